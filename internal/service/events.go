package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/metrics"
	"github.com/ritmodivulga/promo-engine/internal/notification"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

// DashboardCache holds the computed dashboard between writes.
type DashboardCache interface {
	Get(ctx context.Context) (*domain.DashboardMetrics, bool, error)
	Set(ctx context.Context, metrics *domain.DashboardMetrics) error
	Invalidate(ctx context.Context) error
}

// Runtime bundles what every service needs besides its store.
type Runtime struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Notifier notification.Notifier
	Cache    DashboardCache // optional
	Now      func() time.Time
}

func (rt Runtime) now() time.Time {
	if rt.Now == nil {
		return time.Now().UTC()
	}
	return rt.Now()
}

// notify delivers n after the write it describes has committed. Failures are
// logged and counted, never returned.
func (rt Runtime) notify(ctx context.Context, n domain.Notification) {
	n.CreatedAt = rt.now()
	if err := rt.Notifier.Notify(ctx, n); err != nil {
		rt.Metrics.NotificationsFailed.Inc()
		rt.Logger.WarnContext(ctx, "notification not delivered",
			slog.String("recipient", n.Recipient),
			slog.String("title", n.Title),
			slog.Any("error", err),
		)
	}
}

func (rt Runtime) invalidateDashboard(ctx context.Context) {
	if rt.Cache == nil {
		return
	}
	if err := rt.Cache.Invalidate(ctx); err != nil {
		rt.Logger.WarnContext(ctx, "dashboard cache not invalidated", slog.Any("error", err))
	}
}

// notFound maps a missing row to the given business error and wraps any other
// failure as a database error. Business errors pass through untouched.
func notFound(err error, missing func() *customError.BusinessError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return missing()
	}
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return customError.WrapDatabaseError(err)
}

// dbError wraps infrastructure failures, leaving business errors as they are.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return customError.WrapDatabaseError(err)
}
