package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

// Async hands notifications to next on a background goroutine so slow
// transports such as SMTP do not hold up the request that triggered them.
// The send outlives the caller's context but is bounded by timeout.
type Async struct {
	next    Notifier
	timeout time.Duration
	logger  *slog.Logger
	failed  prometheus.Counter

	wg sync.WaitGroup
}

func NewAsync(next Notifier, timeout time.Duration, logger *slog.Logger, failed prometheus.Counter) *Async {
	return &Async{next: next, timeout: timeout, logger: logger, failed: failed}
}

// Notify always returns nil; delivery errors are logged and counted.
func (a *Async) Notify(ctx context.Context, n domain.Notification) error {
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		if err := a.next.Notify(ctx, n); err != nil {
			a.failed.Inc()
			a.logger.WarnContext(ctx, "notification not delivered",
				slog.String("recipient", n.Recipient),
				slog.String("title", n.Title),
				slog.Any("error", err),
			)
		}
	}()
	return nil
}

// Wait blocks until every pending send has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}
