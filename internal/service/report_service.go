package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/repository"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
	"github.com/ritmodivulga/promo-engine/pkg/utils"
)

// SystemActor is used by scheduled jobs that run without a user session.
var SystemActor = domain.Actor{UserID: "system", Role: domain.RoleAdmin}

const (
	periodLabelAll    = "Todos os períodos"
	periodLabelCustom = "custom"
)

type ReportService struct {
	store repository.Store
	rt    Runtime
}

func NewReportService(store repository.Store, rt Runtime) *ReportService {
	return &ReportService{store: store, rt: rt}
}

// FinancialReport totals revenue, costs and profit over the packages matching
// filter. Packages of every status count, cancelled ones included.
func (s *ReportService) FinancialReport(ctx context.Context, actor domain.Actor, filter domain.ReportFilter) (*domain.FinancialReport, error) {
	if err := authorize(actor, "view financial reports", domain.RoleAdmin, domain.RoleFinancial); err != nil {
		return nil, err
	}
	if err := validateStruct(&filter); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, customError.WrapValidation("to must not be before from")
	}

	packages, err := s.store.Packages().List(ctx, domain.PackageFilter{})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	match, label := s.matcher(filter)
	report := &domain.FinancialReport{
		TotalRevenue:           decimal.Zero,
		TotalJuninhoCommission: decimal.Zero,
		TotalNataliaCommission: decimal.Zero,
		TotalEngagementCost:    decimal.Zero,
		TotalProLabore:         decimal.Zero,
		NetProfit:              decimal.Zero,
		Period:                 label,
	}
	for _, p := range packages {
		if !match(p) {
			continue
		}
		report.TotalRevenue = report.TotalRevenue.Add(p.TotalValue)
		report.TotalJuninhoCommission = report.TotalJuninhoCommission.Add(p.JuninhoCommission)
		report.TotalNataliaCommission = report.TotalNataliaCommission.Add(p.NataliaCommission)
		report.TotalEngagementCost = report.TotalEngagementCost.Add(p.EngagementCost)
		report.TotalProLabore = report.TotalProLabore.Add(p.ProLabore)
		report.NetProfit = report.NetProfit.Add(p.NetProfit)
		switch p.Type {
		case domain.PackageTypePackage:
			report.PackagesCount++
		case domain.PackageTypePost:
			report.PostsCount++
		}
	}

	return report, nil
}

// matcher turns a filter into a predicate and a label for the report. An
// explicit from/to range wins over the preset; to is inclusive.
func (s *ReportService) matcher(filter domain.ReportFilter) (func(*domain.Package) bool, string) {
	var clients map[uuid.UUID]bool
	if len(filter.ClientIDs) > 0 {
		clients = make(map[uuid.UUID]bool, len(filter.ClientIDs))
		for _, id := range filter.ClientIDs {
			clients[id] = true
		}
	}
	byClient := func(p *domain.Package) bool {
		return clients == nil || (p.ClientID.Valid && clients[p.ClientID.UUID])
	}

	if filter.From != nil || filter.To != nil {
		label := periodLabelCustom
		if filter.From != nil && filter.To != nil {
			label = filter.From.Format("02/01/2006") + " - " + filter.To.Format("02/01/2006")
		}
		return func(p *domain.Package) bool {
			if filter.From != nil && p.CreatedAt.Before(*filter.From) {
				return false
			}
			if filter.To != nil && p.CreatedAt.After(*filter.To) {
				return false
			}
			return byClient(p)
		}, label
	}

	from, to, ok := utils.PeriodRange(filter.Period, s.rt.now())
	if !ok {
		return byClient, periodLabelAll
	}
	return func(p *domain.Package) bool {
		return inRange(p.CreatedAt, from, to) && byClient(p)
	}, filter.Period
}

// DashboardMetrics returns the landing page counters. Revenue figures are
// only filled in for roles that may see them.
func (s *ReportService) DashboardMetrics(ctx context.Context, actor domain.Actor) (*domain.DashboardMetrics, error) {
	if err := authenticated(actor, "view the dashboard"); err != nil {
		return nil, err
	}

	metrics, err := s.cachedMetrics(ctx)
	if err != nil {
		return nil, err
	}

	out := *metrics
	if !actor.SeesFinancials() {
		out.TotalRevenue = nil
		out.RevenueVariationPercent = nil
	}
	return &out, nil
}

func (s *ReportService) cachedMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	if s.rt.Cache != nil {
		cached, ok, err := s.rt.Cache.Get(ctx)
		if err != nil {
			s.rt.Logger.WarnContext(ctx, "dashboard cache read failed", slog.Any("error", err))
		}
		if ok {
			return cached, nil
		}
	}

	metrics, err := s.computeMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if s.rt.Cache != nil {
		if err := s.rt.Cache.Set(ctx, metrics); err != nil {
			s.rt.Logger.WarnContext(ctx, "dashboard cache write failed", slog.Any("error", err))
		}
	}
	return metrics, nil
}

func (s *ReportService) computeMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	packages, err := s.store.Packages().List(ctx, domain.PackageFilter{})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	pending, err := s.store.Videos().CountPending(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.rt.now()
	thisFrom, thisTo, _ := utils.PeriodRange(domain.PeriodThisMonth, now)
	lastFrom, lastTo, _ := utils.PeriodRange(domain.PeriodLastMonth, now)

	metrics := &domain.DashboardMetrics{PendingVideos: pending}
	total, thisMonth, lastMonth := decimal.Zero, decimal.Zero, decimal.Zero
	for _, p := range packages {
		active := p.Status == domain.PackageStatusActive
		switch p.Type {
		case domain.PackageTypePackage:
			if active {
				metrics.ActivePackages++
			}
			if inRange(p.CreatedAt, thisFrom, thisTo) {
				metrics.PackagesThisMonth++
			}
		case domain.PackageTypePost:
			if active {
				metrics.ActivePosts++
			}
		}

		total = total.Add(p.TotalValue)
		if inRange(p.CreatedAt, thisFrom, thisTo) {
			thisMonth = thisMonth.Add(p.TotalValue)
		}
		if inRange(p.CreatedAt, lastFrom, lastTo) {
			lastMonth = lastMonth.Add(p.TotalValue)
		}
	}

	variation := utils.PercentChange(lastMonth, thisMonth)
	metrics.TotalRevenue = &total
	metrics.RevenueVariationPercent = &variation
	return metrics, nil
}

// inRange reports whether t falls in [from, to).
func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
