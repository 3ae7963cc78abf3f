package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/internal/repository"
	customError "github.com/ritmodivulga/promo-engine/pkg/errors"
)

// PaymentService maintains the paid/unpaid checklist of each package.
type PaymentService struct {
	store repository.Store
	rt    Runtime
}

func NewPaymentService(store repository.Store, rt Runtime) *PaymentService {
	return &PaymentService{store: store, rt: rt}
}

// SetPaymentFlag marks one receivable or payable as paid or unpaid and
// returns the updated package.
func (s *PaymentService) SetPaymentFlag(ctx context.Context, actor domain.Actor, packageID uuid.UUID, field domain.PaymentField, paid bool) (*domain.Package, error) {
	if err := authorize(actor, "update payments", domain.RoleAdmin, domain.RoleFinancial); err != nil {
		return nil, err
	}
	if !field.Valid() {
		return nil, customError.WrapValidation("unknown payment field %q", field)
	}

	var pkg *domain.Package
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		pkg, err = tx.Packages().GetForUpdate(ctx, packageID)
		if err != nil {
			return notFound(err, func() *customError.BusinessError {
				return customError.WrapPackageNotFound(packageID.String())
			})
		}

		at := s.rt.now()
		if err := tx.Packages().UpdatePaymentFlag(ctx, packageID, field, paid, at); err != nil {
			return customError.WrapDatabaseError(err)
		}
		pkg.PaymentStatus.Set(field, paid)
		pkg.UpdatedAt = at
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.rt.Metrics.PaymentFlags.WithLabelValues(string(field)).Inc()
	s.rt.Logger.InfoContext(ctx, "payment flag updated",
		slog.String("package_id", packageID.String()),
		slog.String("field", string(field)),
		slog.Bool("paid", paid),
		slog.String("actor", actor.UserID),
	)
	return pkg, nil
}

// PaymentSummary splits the checklist into what the client owes and what the
// agency owes, with paid and pending totals for each side.
func (s *PaymentService) PaymentSummary(ctx context.Context, actor domain.Actor, packageID uuid.UUID) (*domain.PaymentSummary, error) {
	if err := authorize(actor, "view payments", domain.RoleAdmin, domain.RoleFinancial); err != nil {
		return nil, err
	}

	pkg, err := s.store.Packages().GetByID(ctx, packageID)
	if err != nil {
		return nil, notFound(err, func() *customError.BusinessError {
			return customError.WrapPackageNotFound(packageID.String())
		})
	}

	return Summarize(pkg), nil
}

// Summarize builds the payment summary of pkg.
func Summarize(pkg *domain.Package) *domain.PaymentSummary {
	item := func(f domain.PaymentField) domain.PaymentItem {
		return domain.PaymentItem{
			Field:  f,
			Label:  f.Label(),
			Amount: pkg.Amount(f),
			Paid:   pkg.PaymentStatus.Get(f),
		}
	}

	summary := &domain.PaymentSummary{
		PackageID:      pkg.ID,
		Receivables:    []domain.PaymentItem{item(domain.PaymentFieldTotalValue)},
		TotalReceived:  decimal.Zero,
		TotalPaid:      decimal.Zero,
		PendingReceive: decimal.Zero,
		PendingPay:     decimal.Zero,
		AllReceived:    true,
		AllPaid:        true,
	}
	for _, f := range domain.PayableFields {
		summary.Payables = append(summary.Payables, item(f))
	}

	for _, r := range summary.Receivables {
		if r.Paid {
			summary.TotalReceived = summary.TotalReceived.Add(r.Amount)
		} else {
			summary.PendingReceive = summary.PendingReceive.Add(r.Amount)
			summary.AllReceived = false
		}
	}
	for _, p := range summary.Payables {
		if p.Paid {
			summary.TotalPaid = summary.TotalPaid.Add(p.Amount)
		} else {
			summary.PendingPay = summary.PendingPay.Add(p.Amount)
			summary.AllPaid = false
		}
	}
	return summary
}
