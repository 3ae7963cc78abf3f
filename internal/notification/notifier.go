package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

// Notifier delivers a message to a user id or role. Delivery is best effort;
// callers log failures and carry on.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n domain.Notification) error {
	l.logger.InfoContext(ctx, "notification",
		slog.String("recipient", n.Recipient),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
		slog.String("severity", string(n.Severity)),
	)
	return nil
}

// Recorder keeps notifications in memory for tests.
type Recorder struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (r *Recorder) Notify(ctx context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns what was delivered so far, oldest first.
func (r *Recorder) Sent() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.sent...)
}
