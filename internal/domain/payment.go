package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentField names one flag of the payment checklist.
type PaymentField string

const (
	PaymentFieldTotalValue        PaymentField = "totalValuePaid"
	PaymentFieldJuninhoCommission PaymentField = "juninhoCommissionPaid"
	PaymentFieldNataliaCommission PaymentField = "nataliaCommissionPaid"
	PaymentFieldEngagementCost    PaymentField = "engagementCostPaid"
	PaymentFieldProLabore         PaymentField = "proLaborePaid"
)

// PayableFields lists the cost flags in display order.
var PayableFields = []PaymentField{
	PaymentFieldJuninhoCommission,
	PaymentFieldNataliaCommission,
	PaymentFieldEngagementCost,
	PaymentFieldProLabore,
}

var paymentLabels = map[PaymentField]string{
	PaymentFieldTotalValue:        "Total value",
	PaymentFieldJuninhoCommission: "Juninho commission",
	PaymentFieldNataliaCommission: "Natalia commission",
	PaymentFieldEngagementCost:    "Engagement cost",
	PaymentFieldProLabore:         "Pro-labore",
}

// Valid reports whether f names a checklist flag.
func (f PaymentField) Valid() bool {
	_, ok := paymentLabels[f]
	return ok
}

func (f PaymentField) Label() string {
	return paymentLabels[f]
}

// PaymentStatus is the paid/unpaid checklist of a package. Amounts always come
// from the owning package.
type PaymentStatus struct {
	TotalValuePaid        bool `json:"totalValuePaid" db:"total_value_paid"`
	JuninhoCommissionPaid bool `json:"juninhoCommissionPaid" db:"juninho_commission_paid"`
	NataliaCommissionPaid bool `json:"nataliaCommissionPaid" db:"natalia_commission_paid"`
	EngagementCostPaid    bool `json:"engagementCostPaid" db:"engagement_cost_paid"`
	ProLaborePaid         bool `json:"proLaborePaid" db:"pro_labore_paid"`
}

// Get returns the flag named by field.
func (s PaymentStatus) Get(field PaymentField) bool {
	switch field {
	case PaymentFieldTotalValue:
		return s.TotalValuePaid
	case PaymentFieldJuninhoCommission:
		return s.JuninhoCommissionPaid
	case PaymentFieldNataliaCommission:
		return s.NataliaCommissionPaid
	case PaymentFieldEngagementCost:
		return s.EngagementCostPaid
	case PaymentFieldProLabore:
		return s.ProLaborePaid
	}
	return false
}

// Set updates the flag named by field. Unknown fields are ignored.
func (s *PaymentStatus) Set(field PaymentField, paid bool) {
	switch field {
	case PaymentFieldTotalValue:
		s.TotalValuePaid = paid
	case PaymentFieldJuninhoCommission:
		s.JuninhoCommissionPaid = paid
	case PaymentFieldNataliaCommission:
		s.NataliaCommissionPaid = paid
	case PaymentFieldEngagementCost:
		s.EngagementCostPaid = paid
	case PaymentFieldProLabore:
		s.ProLaborePaid = paid
	}
}

type UpdatePaymentRequest struct {
	Field PaymentField `json:"field" validate:"required"`
	Paid  bool         `json:"paid"`
}

// PaymentItem is one line of the receivable/payable summary
type PaymentItem struct {
	Field  PaymentField    `json:"field"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

type PaymentSummary struct {
	PackageID      uuid.UUID       `json:"package_id"`
	Receivables    []PaymentItem   `json:"receivables"`
	Payables       []PaymentItem   `json:"payables"`
	TotalReceived  decimal.Decimal `json:"total_received"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	PendingReceive decimal.Decimal `json:"pending_receive"`
	PendingPay     decimal.Decimal `json:"pending_pay"`
	AllReceived    bool            `json:"all_received"`
	AllPaid        bool            `json:"all_paid"`
}
