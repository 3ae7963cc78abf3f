package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageType distinguishes bundled packages from single posts.
type PackageType string

const (
	PackageTypePackage PackageType = "package"
	PackageTypePost    PackageType = "post"
)

// Valid reports whether t is a known contract type.
func (t PackageType) Valid() bool {
	return t == PackageTypePackage || t == PackageTypePost
}

type PackageStatus string

const (
	PackageStatusActive    PackageStatus = "active"
	PackageStatusCompleted PackageStatus = "completed"
	PackageStatusCancelled PackageStatus = "cancelled"
)

// IsFinal reports whether the package left the active state for good.
func (s PackageStatus) IsFinal() bool {
	return s == PackageStatusCompleted || s == PackageStatusCancelled
}

// Package represents a contract with a client. Posts are packages with
// Type == PackageTypePost.
type Package struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	ClientID          uuid.NullUUID   `json:"client_id" db:"client_id"`
	ClientName        string          `json:"client_name" db:"client_name"`
	Type              PackageType     `json:"type" db:"type"`
	TotalValue        decimal.Decimal `json:"total_value" db:"total_value"`
	JuninhoCommission decimal.Decimal `json:"juninho_commission" db:"juninho_commission"`
	NataliaCommission decimal.Decimal `json:"natalia_commission" db:"natalia_commission"`
	EngagementCost    decimal.Decimal `json:"engagement_cost" db:"engagement_cost"`
	ProLabore         decimal.Decimal `json:"pro_labore" db:"pro_labore"`
	NetProfit         decimal.Decimal `json:"net_profit" db:"net_profit"`
	Status            PackageStatus   `json:"status" db:"status"`
	PaymentStatus     `json:"payment_status"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// IsLoss reports whether the contract costs more than it earns.
func (p *Package) IsLoss() bool {
	return p.NetProfit.IsNegative()
}

// ApplyBreakdown copies the derived financial fields onto the package.
func (p *Package) ApplyBreakdown(b *FinancialBreakdown) {
	p.TotalValue = b.TotalValue
	p.JuninhoCommission = b.JuninhoCommission
	p.NataliaCommission = b.NataliaCommission
	p.EngagementCost = b.EngagementCost
	p.ProLabore = b.ProLabore
	p.NetProfit = b.NetProfit
}

// Amount returns the value a payment flag refers to.
func (p *Package) Amount(field PaymentField) decimal.Decimal {
	switch field {
	case PaymentFieldTotalValue:
		return p.TotalValue
	case PaymentFieldJuninhoCommission:
		return p.JuninhoCommission
	case PaymentFieldNataliaCommission:
		return p.NataliaCommission
	case PaymentFieldEngagementCost:
		return p.EngagementCost
	case PaymentFieldProLabore:
		return p.ProLabore
	}
	return decimal.Zero
}

// PackageFilter narrows ListPackages. Zero values match everything.
type PackageFilter struct {
	Type     PackageType
	Status   PackageStatus
	ClientID uuid.NullUUID
}

// CreatePackageRequest is the input for both packages and posts. When
// CostModel is nil the flat pricing for Type is used. Either ClientID or
// ClientName must be set.
type CreatePackageRequest struct {
	ClientID   uuid.NullUUID   `json:"client_id"`
	ClientName string          `json:"client_name" validate:"max=200"`
	Type       PackageType     `json:"type" validate:"required,oneof=package post"`
	TotalValue decimal.Decimal `json:"total_value" validate:"gte=0"`
	VideoCount int             `json:"video_count" validate:"gte=0,lte=50"`
	CostModel  *CostModel      `json:"cost_model"`
}

type CreatePackageResponse struct {
	Package *Package `json:"package"`
	Videos  []*Video `json:"videos"`
}
