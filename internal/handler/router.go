package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ritmodivulga/promo-engine/internal/auth"
	"github.com/ritmodivulga/promo-engine/internal/metrics"
	"github.com/ritmodivulga/promo-engine/internal/service"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

// Dependencies is everything the router mounts.
type Dependencies struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Tokens   *auth.Tokens
	Location *time.Location

	Clients  *service.ClientService
	Packages *service.PackageService
	Payments *service.PaymentService
	Workflow *service.WorkflowService
	Reports  *service.ReportService
	Inbox    Inbox // nil disables the notifications endpoint
	Health   *HealthHandler
}

func NewRouter(d Dependencies) *mux.Router {
	clients := NewClientHandler(d.Clients)
	packages := NewPackageHandler(d.Packages, d.Payments)
	videos := NewVideoHandler(d.Workflow)
	reports := NewReportHandler(d.Reports, d.Location)
	notifications := NewNotificationHandler(d.Inbox)

	router := mux.NewRouter()
	router.Use(response.RequestIDMiddleware)
	router.Use(response.LoggingMiddleware(d.Logger, d.Metrics.HTTPRequests))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", d.Health.Health).Methods("GET")
	router.HandleFunc("/health/ready", d.Health.Ready).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(d.Tokens.Middleware)

	api.HandleFunc("/clients", clients.Create).Methods("POST")
	api.HandleFunc("/clients", clients.List).Methods("GET")
	api.HandleFunc("/clients/{clientId}", clients.Get).Methods("GET")
	api.HandleFunc("/clients/{clientId}", clients.Update).Methods("PATCH")
	api.HandleFunc("/clients/{clientId}", clients.Delete).Methods("DELETE")
	api.HandleFunc("/clients/{clientId}/packages", clients.Packages).Methods("GET")
	api.HandleFunc("/clients/{clientId}/revenue", clients.Revenue).Methods("GET")

	api.HandleFunc("/packages/quote", packages.Quote).Methods("POST")
	api.HandleFunc("/packages", packages.Create).Methods("POST")
	api.HandleFunc("/packages", packages.List).Methods("GET")
	api.HandleFunc("/packages/{packageId}", packages.Get).Methods("GET")
	api.HandleFunc("/packages/{packageId}/cancel", packages.Cancel).Methods("POST")
	api.HandleFunc("/packages/{packageId}/videos", packages.Videos).Methods("GET")
	api.HandleFunc("/packages/{packageId}/payments", packages.Payments).Methods("GET")
	api.HandleFunc("/packages/{packageId}/payments", packages.SetPayment).Methods("PATCH")

	api.HandleFunc("/videos/{videoId}/status", videos.Advance).Methods("PATCH")

	api.HandleFunc("/reports/financial", reports.Financial).Methods("GET")
	api.HandleFunc("/dashboard", reports.Dashboard).Methods("GET")

	api.HandleFunc("/notifications", notifications.List).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return router
}
