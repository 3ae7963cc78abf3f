package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report period presets
const (
	PeriodAll         = "all"
	PeriodThisMonth   = "thisMonth"
	PeriodLastMonth   = "lastMonth"
	PeriodLast3Months = "last3Months"
	PeriodLast6Months = "last6Months"
	PeriodThisYear    = "thisYear"
)

// ReportFilter selects the packages a financial report covers. An explicit
// From/To range wins over Period.
type ReportFilter struct {
	Period    string      `json:"period" validate:"omitempty,oneof=all thisMonth lastMonth last3Months last6Months thisYear"`
	From      *time.Time  `json:"from"`
	To        *time.Time  `json:"to"`
	ClientIDs []uuid.UUID `json:"client_ids"`
}

type FinancialReport struct {
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	TotalJuninhoCommission decimal.Decimal `json:"total_juninho_commission"`
	TotalNataliaCommission decimal.Decimal `json:"total_natalia_commission"`
	TotalEngagementCost    decimal.Decimal `json:"total_engagement_cost"`
	TotalProLabore         decimal.Decimal `json:"total_pro_labore"`
	NetProfit              decimal.Decimal `json:"net_profit"`
	PackagesCount          int             `json:"packages_count"`
	PostsCount             int             `json:"posts_count"`
	Period                 string          `json:"period"`
}

// DashboardMetrics is the landing page summary. Revenue fields are nil for
// roles that may not see financial figures.
type DashboardMetrics struct {
	ActivePackages          int              `json:"active_packages"`
	PackagesThisMonth       int              `json:"packages_this_month"`
	ActivePosts             int              `json:"active_posts"`
	PendingVideos           int              `json:"pending_videos"`
	TotalRevenue            *decimal.Decimal `json:"total_revenue,omitempty"`
	RevenueVariationPercent *decimal.Decimal `json:"revenue_variation_percent,omitempty"`
}
