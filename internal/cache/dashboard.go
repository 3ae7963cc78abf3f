package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

const dashboardKey = "dashboard:metrics"

// DashboardCache stores the full (unredacted) dashboard metrics for a short
// time. Writers invalidate it whenever counts or revenue change.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

// Get returns the cached metrics, or false on a miss.
func (c *DashboardCache) Get(ctx context.Context) (*domain.DashboardMetrics, bool, error) {
	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var metrics domain.DashboardMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, false, fmt.Errorf("decode cached dashboard: %w", err)
	}
	return &metrics, true, nil
}

func (c *DashboardCache) Set(ctx context.Context, metrics *domain.DashboardMetrics) error {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, raw, c.ttl).Err()
}

func (c *DashboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}
