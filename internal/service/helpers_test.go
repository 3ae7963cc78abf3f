package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/metrics"
	"github.com/ritmodivulga/promo-engine/internal/notification"
	"github.com/ritmodivulga/promo-engine/internal/repository"
)

var (
	adminActor     = domain.Actor{UserID: "1", Role: domain.RoleAdmin}
	managerActor   = domain.Actor{UserID: "2", Role: domain.RoleVideoManager}
	financialActor = domain.Actor{UserID: "3", Role: domain.RoleFinancial}
	guestActor     = domain.Actor{UserID: "9", Role: domain.Role("guest")}
)

var testRecipients = Recipients{VideoPosted: "2", PackageCompleted: "admin"}

type fixture struct {
	store    repository.Store
	recorder *notification.Recorder
	metrics  *metrics.Metrics
	now      time.Time
	rt       Runtime

	packages *PackageService
	workflow *WorkflowService
	payments *PaymentService
	clients  *ClientService
	reports  *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, repository.NewMemoryStore())
}

func newFixtureOn(t *testing.T, store repository.Store) *fixture {
	t.Helper()

	f := &fixture{
		store:    store,
		recorder: &notification.Recorder{},
		metrics:  metrics.New(prometheus.NewRegistry()),
		now:      time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	f.rt = Runtime{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  f.metrics,
		Notifier: f.recorder,
		Now:      func() time.Time { return f.now },
	}
	f.wire()
	return f
}

// wire (re)builds the services after rt changed.
func (f *fixture) wire() {
	calc := NewFinancialCalculator(DefaultPricing())
	f.packages = NewPackageService(f.store, calc, VideoCounts{PerPackage: 5, DefaultPerPost: 1}, f.rt)
	f.workflow = NewWorkflowService(f.store, testRecipients, f.rt)
	f.payments = NewPaymentService(f.store, f.rt)
	f.clients = NewClientService(f.store, f.rt)
	f.reports = NewReportService(f.store, f.rt)
}

func (f *fixture) createPackage(t *testing.T, typ domain.PackageType, total string) *domain.CreatePackageResponse {
	t.Helper()
	res, err := f.packages.CreatePackage(context.Background(), adminActor, &domain.CreatePackageRequest{
		ClientName: "Ana Souza",
		Type:       typ,
		TotalValue: decimal.RequireFromString(total),
	})
	require.NoError(t, err)
	return res
}

// advanceTo walks a video forward as admin until it reaches target.
func (f *fixture) advanceTo(t *testing.T, video *domain.Video, target domain.VideoStatus) *domain.Video {
	t.Helper()
	current := video
	for current.Status != target {
		next, ok := current.Status.Next()
		require.True(t, ok, "cannot reach %s from %s", target, current.Status)
		var err error
		current, err = f.workflow.Advance(context.Background(), adminActor, current.ID, next)
		require.NoError(t, err)
	}
	return current
}

func (f *fixture) packageStatus(t *testing.T, pkg *domain.Package) domain.PackageStatus {
	t.Helper()
	got, err := f.store.Packages().GetByID(context.Background(), pkg.ID)
	require.NoError(t, err)
	return got.Status
}

func (f *fixture) sentTo(recipient string) []domain.Notification {
	var out []domain.Notification
	for _, n := range f.recorder.Sent() {
		if n.Recipient == recipient {
			out = append(out, n)
		}
	}
	return out
}
