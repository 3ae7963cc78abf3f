package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/ritmodivulga/promo-engine/internal/auth"
	"github.com/ritmodivulga/promo-engine/internal/cache"
	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/database"
	"github.com/ritmodivulga/promo-engine/internal/metrics"
	"github.com/ritmodivulga/promo-engine/internal/notification"
	"github.com/ritmodivulga/promo-engine/internal/repository"
	"github.com/ritmodivulga/promo-engine/internal/service"
)

// App is the wired dependency graph shared by the server and the scheduler.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	DB      *sqlx.DB      // nil for the memory driver
	Redis   *redis.Client // nil when REDIS_HOST and REDIS_URL are empty
	Store   repository.Store
	Inbox   *notification.RedisNotifier
	Mail    *notification.Async // nil when SMTP_HOST is empty
	Tokens  *auth.Tokens

	Packages *service.PackageService
	Workflow *service.WorkflowService
	Payments *service.PaymentService
	Clients  *service.ClientService
	Reports  *service.ReportService
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.ParseLogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Logging.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// New opens the store and redis and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	tokens, err := newTokens(cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(reg),
		Tokens:  tokens,
	}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Redis = rdb

	notifier, err := a.notifier()
	if err != nil {
		a.Close()
		return nil, err
	}

	loc := cfg.GetSchedulerLocation()
	rt := service.Runtime{
		Logger:   logger,
		Metrics:  a.Metrics,
		Notifier: notifier,
		Now:      func() time.Time { return time.Now().In(loc) },
	}
	if a.Redis != nil {
		rt.Cache = cache.NewDashboardCache(a.Redis, cfg.Redis.CacheTTL)
	}

	calc := service.NewFinancialCalculator(service.PricingFromConfig(cfg))
	a.Packages = service.NewPackageService(a.Store, calc, service.VideoCounts{
		PerPackage:     cfg.Business.VideosPerPackage,
		DefaultPerPost: cfg.Business.DefaultVideosPerPost,
	}, rt)
	a.Workflow = service.NewWorkflowService(a.Store, service.Recipients{
		VideoPosted:      cfg.Notification.VideoPostedRecipient,
		PackageCompleted: cfg.Notification.PackageCompletedRecipient,
	}, rt)
	a.Payments = service.NewPaymentService(a.Store, rt)
	a.Clients = service.NewClientService(a.Store, rt)
	a.Reports = service.NewReportService(a.Store, rt)

	return a, nil
}

// newTokens signs with JWT_SECRET, or with a random per-process key when it is
// unset. Config.Validate already refuses an empty secret in production.
func newTokens(cfg config.AuthConfig, logger *slog.Logger) (*auth.Tokens, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		generated, err := auth.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		logger.Warn("JWT_SECRET is empty, signing with a random key; tokens from cmd/token will be rejected")
		secret = generated
	}
	return auth.NewTokens(secret, cfg.TokenTTL)
}

func (a *App) openStore(ctx context.Context) error {
	if a.Config.Database.Driver == "memory" {
		a.Logger.Warn("using the in-memory store, data is lost on restart")
		a.Store = repository.NewMemoryStore()
		return nil
	}

	db, err := database.Open(a.Config.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.DB = db

	// The embedded database has no separate migration step.
	if db.DriverName() == "sqlite" {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return err
		}
	}

	a.Store = repository.NewSQLStore(db)
	return nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	if cfg.Host == "" {
		return nil, nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// notifier fans out to the log, the redis inbox and email, depending on what
// is configured.
func (a *App) notifier() (notification.Notifier, error) {
	out := notification.Multi{notification.NewLogNotifier(a.Logger)}

	if a.Redis != nil {
		a.Inbox = notification.NewRedisNotifier(a.Redis)
		out = append(out, a.Inbox)
	}

	n := a.Config.Notification
	if n.SMTPHost != "" {
		recipients, err := a.Config.EmailRecipients()
		if err != nil {
			return nil, err
		}
		email := notification.NewEmailNotifier(notification.SMTPConfig{
			Host:     n.SMTPHost,
			Port:     n.SMTPPort,
			User:     n.SMTPUser,
			Password: n.SMTPPassword,
			From:     n.SMTPFrom,
		}, recipients)
		a.Mail = notification.NewAsync(email, n.SMTPTimeout, a.Logger, a.Metrics.NotificationsFailed)
		out = append(out, a.Mail)
	}

	return out, nil
}

func (a *App) Close() error {
	if a.Mail != nil {
		a.Mail.Wait()
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
