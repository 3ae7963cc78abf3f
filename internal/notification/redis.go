package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

const inboxLimit = 100

// InboxKey is the redis list holding a recipient's latest notifications.
func InboxKey(recipient string) string {
	return "notifications:" + recipient
}

// ChannelKey is the pub/sub channel live dashboards subscribe to.
func ChannelKey(recipient string) string {
	return "notifications:live:" + recipient
}

// RedisNotifier pushes notifications to a capped per-recipient inbox and
// publishes them for connected dashboards.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (r *RedisNotifier) Notify(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, InboxKey(n.Recipient), payload)
	pipe.LTrim(ctx, InboxKey(n.Recipient), 0, inboxLimit-1)
	pipe.Publish(ctx, ChannelKey(n.Recipient), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification to %s: %w", n.Recipient, err)
	}
	return nil
}

// Inbox returns up to limit notifications for recipient, newest first.
func (r *RedisNotifier) Inbox(ctx context.Context, recipient string, limit int64) ([]domain.Notification, error) {
	if limit <= 0 || limit > inboxLimit {
		limit = inboxLimit
	}
	raw, err := r.client.LRange(ctx, InboxKey(recipient), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(raw))
	for _, item := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
