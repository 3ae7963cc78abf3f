package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "promo_engine"

// Metrics groups the counters exported on /metrics.
type Metrics struct {
	PackagesCreated     *prometheus.CounterVec
	PackagesCompleted   prometheus.Counter
	PackagesCancelled   prometheus.Counter
	VideoTransitions    *prometheus.CounterVec
	PaymentFlags        *prometheus.CounterVec
	NotificationsFailed prometheus.Counter
	SchedulerRuns       *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
}

// New registers the counters on reg. Pass prometheus.DefaultRegisterer in
// binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PackagesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_created_total",
			Help:      "Packages and posts created, by type.",
		}, []string{"type"}),
		PackagesCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_completed_total",
			Help:      "Packages moved to completed after every video was engaged.",
		}),
		PackagesCancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_cancelled_total",
			Help:      "Packages cancelled by an admin.",
		}),
		VideoTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "video_transitions_total",
			Help:      "Video workflow steps applied, by resulting status.",
		}, []string{"status"}),
		PaymentFlags: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_flag_updates_total",
			Help:      "Payment checklist updates, by field.",
		}, []string{"field"}),
		NotificationsFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notifications that could not be delivered.",
		}),
		SchedulerRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_runs_total",
			Help:      "Scheduled job runs, by job and outcome.",
		}, []string{"job", "outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}
}
