package service

import (
	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/domain"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
	"github.com/ritmodivulga/promo-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// Pricing holds the default amounts and rates the calculator starts from.
type Pricing struct {
	FixedCommission        decimal.Decimal
	CommissionRate         decimal.Decimal
	ProLaboreRate          decimal.Decimal
	PackageEngagementCost  decimal.Decimal
	PostEngagementCost     decimal.Decimal
	EngagementCostPerVideo decimal.Decimal
}

// DefaultPricing is the agency's standard price table.
func DefaultPricing() Pricing {
	return Pricing{
		FixedCommission:        decimal.NewFromInt(20),
		CommissionRate:         decimal.RequireFromString("0.05"),
		ProLaboreRate:          decimal.RequireFromString("0.70"),
		PackageEngagementCost:  decimal.NewFromInt(10),
		PostEngagementCost:     decimal.NewFromInt(2),
		EngagementCostPerVideo: decimal.NewFromInt(2),
	}
}

// PricingFromConfig reads the price table from the business config.
func PricingFromConfig(cfg *config.Config) Pricing {
	return Pricing{
		FixedCommission:        cfg.GetFixedCommission(),
		CommissionRate:         cfg.GetCommissionRate(),
		ProLaboreRate:          cfg.GetProLaboreRate(),
		PackageEngagementCost:  cfg.GetPackageEngagementCost(),
		PostEngagementCost:     cfg.GetPostEngagementCost(),
		EngagementCostPerVideo: cfg.GetEngagementCostPerVideo(),
	}
}

// FinancialCalculator derives commissions, costs and net profit from a
// contract's total value. It performs no I/O and never rounds.
type FinancialCalculator struct {
	pricing Pricing
}

func NewFinancialCalculator(pricing Pricing) *FinancialCalculator {
	return &FinancialCalculator{pricing: pricing}
}

// DefaultCostModel returns a cost model with every term enabled at the
// configured defaults.
func (c *FinancialCalculator) DefaultCostModel() domain.CostModel {
	return domain.CostModel{
		FixedCommission:    domain.CostItem{Enabled: true, Value: c.pricing.FixedCommission},
		PercentCommission:  domain.CostItem{Enabled: true, Value: c.pricing.CommissionRate},
		EngagementPerVideo: domain.CostItem{Enabled: true, Value: c.pricing.EngagementCostPerVideo},
		ProLabore:          domain.CostItem{Enabled: true, Value: c.pricing.ProLaboreRate},
	}
}

// Flat applies the standard price table. The engagement cost is a flat amount
// picked by contract type.
func (c *FinancialCalculator) Flat(totalValue decimal.Decimal, contractType domain.PackageType) (*domain.FinancialBreakdown, error) {
	if err := validateTotalValue(totalValue); err != nil {
		return nil, err
	}

	var engagement decimal.Decimal
	switch contractType {
	case domain.PackageTypePackage:
		engagement = c.pricing.PackageEngagementCost
	case domain.PackageTypePost:
		engagement = c.pricing.PostEngagementCost
	default:
		return nil, customError.WrapValidation("unknown contract type %q", contractType)
	}

	return breakdown(
		totalValue,
		c.pricing.FixedCommission,
		utils.PercentOf(totalValue, c.pricing.CommissionRate),
		engagement,
		utils.PercentOf(totalValue, c.pricing.ProLaboreRate),
	), nil
}

// Configurable applies a cost model where every term can be switched off.
// Disabled terms contribute zero; engagement is charged per video.
func (c *FinancialCalculator) Configurable(totalValue decimal.Decimal, model domain.CostModel, videoCount int) (*domain.FinancialBreakdown, error) {
	if err := validateTotalValue(totalValue); err != nil {
		return nil, err
	}
	if videoCount < 0 {
		return nil, customError.WrapValidation("video count must not be negative, got %d", videoCount)
	}
	for name, item := range map[string]domain.CostItem{
		"fixed commission":     model.FixedCommission,
		"percent commission":   model.PercentCommission,
		"engagement per video": model.EngagementPerVideo,
		"pro-labore":           model.ProLabore,
	} {
		if item.Value.IsNegative() {
			return nil, customError.WrapValidation("%s must not be negative", name)
		}
	}

	return breakdown(
		totalValue,
		enabled(model.FixedCommission, model.FixedCommission.Value),
		enabled(model.PercentCommission, utils.PercentOf(totalValue, model.PercentCommission.Value)),
		enabled(model.EngagementPerVideo, model.EngagementPerVideo.Value.Mul(decimal.NewFromInt(int64(videoCount)))),
		enabled(model.ProLabore, utils.PercentOf(totalValue, model.ProLabore.Value)),
	), nil
}

func enabled(item domain.CostItem, value decimal.Decimal) decimal.Decimal {
	if !item.Enabled {
		return decimal.Zero
	}
	return value
}

func validateTotalValue(totalValue decimal.Decimal) error {
	if totalValue.IsNegative() {
		return customError.WrapValidation("total value must not be negative, got %s", totalValue.String())
	}
	return nil
}

func breakdown(totalValue, juninho, natalia, engagement, proLabore decimal.Decimal) *domain.FinancialBreakdown {
	b := &domain.FinancialBreakdown{
		TotalValue:        totalValue,
		JuninhoCommission: juninho,
		NataliaCommission: natalia,
		EngagementCost:    engagement,
		ProLabore:         proLabore,
	}
	b.NetProfit = totalValue.Sub(b.TotalCosts())
	b.IsLoss = b.NetProfit.IsNegative()
	return b
}
