package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/metrics"
	"github.com/ritmodivulga/promo-engine/internal/service"
	"github.com/ritmodivulga/promo-engine/pkg/utils"
)

const (
	JobReconcile = "reconcile"
	JobSummary   = "summary"
)

// jobTimeout bounds a single run so a stuck database never piles up runs.
const jobTimeout = 2 * time.Minute

type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

type Reporter interface {
	FinancialReport(ctx context.Context, actor domain.Actor, filter domain.ReportFilter) (*domain.FinancialReport, error)
}

// Scheduler runs the background jobs: completion reconciliation and the
// daily financial summary.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	reporter   Reporter
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New registers both jobs with cron specs that include a seconds field.
func New(cfg config.SchedulerConfig, loc *time.Location, reconciler Reconciler, reporter Reporter, logger *slog.Logger, m *metrics.Metrics) (*Scheduler, error) {
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		reconciler: reconciler,
		reporter:   reporter,
		logger:     logger,
		metrics:    m,
	}

	if _, err := s.cron.AddFunc(cfg.ReconcileSpec, func() { s.run(JobReconcile, s.RunReconcile) }); err != nil {
		return nil, fmt.Errorf("schedule %s job: %w", JobReconcile, err)
	}
	if _, err := s.cron.AddFunc(cfg.SummarySpec, func() { s.run(JobSummary, s.RunSummary) }); err != nil {
		return nil, fmt.Errorf("schedule %s job: %w", JobSummary, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("job scheduled", slog.Int("entry", int(e.ID)), slog.Time("next", e.Next))
	}
}

// Stop halts the cron loop and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunReconcile completes every active package whose videos are all engaged.
func (s *Scheduler) RunReconcile(ctx context.Context) error {
	completed, err := s.reconciler.Reconcile(ctx)
	if completed > 0 {
		s.logger.InfoContext(ctx, "stranded packages completed", slog.Int("count", completed))
	}
	return err
}

// RunSummary logs this month's financial totals.
func (s *Scheduler) RunSummary(ctx context.Context) error {
	report, err := s.reporter.FinancialReport(ctx, service.SystemActor, domain.ReportFilter{Period: domain.PeriodThisMonth})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "monthly financial summary",
		slog.String("period", report.Period),
		slog.String("revenue", utils.FormatBRL(report.TotalRevenue)),
		slog.String("net_profit", utils.FormatBRL(report.NetProfit)),
		slog.Int("packages", report.PackagesCount),
		slog.Int("posts", report.PostsCount),
	)
	return nil
}

func (s *Scheduler) run(job string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := fn(ctx); err != nil {
		s.metrics.SchedulerRuns.WithLabelValues(job, "error").Inc()
		s.logger.Error("job failed", slog.String("job", job), slog.Any("error", err))
		return
	}
	s.metrics.SchedulerRuns.WithLabelValues(job, "ok").Inc()
	s.logger.Debug("job finished", slog.String("job", job), slog.Duration("took", time.Since(start)))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}
