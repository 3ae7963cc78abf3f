package domain

import (
	"github.com/shopspring/decimal"
)

// CostItem is one configurable term of the cost model. Value is a flat amount
// or a rate depending on the term.
type CostItem struct {
	Enabled bool            `json:"enabled"`
	Value   decimal.Decimal `json:"value" validate:"gte=0"`
}

// CostModel configures every deduction taken from a contract's total value.
type CostModel struct {
	FixedCommission    CostItem `json:"fixed_commission"`     // flat amount
	PercentCommission  CostItem `json:"percent_commission"`   // rate of total value
	EngagementPerVideo CostItem `json:"engagement_per_video"` // amount per video
	ProLabore          CostItem `json:"pro_labore"`           // rate of total value
}

// FinancialBreakdown is the derived cost/profit split of a contract.
type FinancialBreakdown struct {
	TotalValue        decimal.Decimal `json:"total_value"`
	JuninhoCommission decimal.Decimal `json:"juninho_commission"`
	NataliaCommission decimal.Decimal `json:"natalia_commission"`
	EngagementCost    decimal.Decimal `json:"engagement_cost"`
	ProLabore         decimal.Decimal `json:"pro_labore"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	IsLoss            bool            `json:"is_loss"`
}

// TotalCosts sums the four deductions.
func (b *FinancialBreakdown) TotalCosts() decimal.Decimal {
	return b.JuninhoCommission.
		Add(b.NataliaCommission).
		Add(b.EngagementCost).
		Add(b.ProLabore)
}

// QuoteRequest previews a breakdown without creating anything.
type QuoteRequest struct {
	Type       PackageType     `json:"type" validate:"required,oneof=package post"`
	TotalValue decimal.Decimal `json:"total_value" validate:"gte=0"`
	VideoCount int             `json:"video_count" validate:"gte=0,lte=50"`
	CostModel  *CostModel      `json:"cost_model"`
}
