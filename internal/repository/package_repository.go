package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ritmodivulga/promo-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type packageRepository struct {
	db       sqlx.ExtContext
	lockRows bool
}

const packageColumns = `id, client_id, client_name, type, total_value,
	juninho_commission, natalia_commission, engagement_cost, pro_labore, net_profit, status,
	total_value_paid, juninho_commission_paid, natalia_commission_paid, engagement_cost_paid, pro_labore_paid,
	created_at, updated_at`

// paymentColumns whitelists the checklist columns that may be updated by name.
var paymentColumns = map[domain.PaymentField]string{
	domain.PaymentFieldTotalValue:        "total_value_paid",
	domain.PaymentFieldJuninhoCommission: "juninho_commission_paid",
	domain.PaymentFieldNataliaCommission: "natalia_commission_paid",
	domain.PaymentFieldEngagementCost:    "engagement_cost_paid",
	domain.PaymentFieldProLabore:         "pro_labore_paid",
}

func (r *packageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	query := r.db.Rebind(`
		INSERT INTO packages (` + packageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		pkg.ID,
		pkg.ClientID,
		pkg.ClientName,
		pkg.Type,
		pkg.TotalValue,
		pkg.JuninhoCommission,
		pkg.NataliaCommission,
		pkg.EngagementCost,
		pkg.ProLabore,
		pkg.NetProfit,
		pkg.Status,
		pkg.TotalValuePaid,
		pkg.JuninhoCommissionPaid,
		pkg.NataliaCommissionPaid,
		pkg.EngagementCostPaid,
		pkg.ProLaborePaid,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)

	return err
}

func (r *packageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return r.get(ctx, id, false)
}

func (r *packageRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	return r.get(ctx, id, r.lockRows)
}

func (r *packageRepository) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = ?`
	if lock {
		query += ` FOR UPDATE`
	}

	var pkg domain.Package
	if err := sqlx.GetContext(ctx, r.db, &pkg, r.db.Rebind(query), id); err != nil {
		return nil, err
	}

	return &pkg, nil
}

func (r *packageRepository) List(ctx context.Context, filter domain.PackageFilter) ([]*domain.Package, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.ClientID.Valid {
		where = append(where, "client_id = ?")
		args = append(args, filter.ClientID.UUID)
	}

	query := `SELECT ` + packageColumns + ` FROM packages`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	var packages []*domain.Package
	if err := sqlx.SelectContext(ctx, r.db, &packages, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *packageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PackageStatus, at time.Time) (bool, error) {
	query := r.db.Rebind(`
		UPDATE packages
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`)

	result, err := r.db.ExecContext(ctx, query, to, at, id, from)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *packageRepository) UpdatePaymentFlag(ctx context.Context, id uuid.UUID, field domain.PaymentField, paid bool, at time.Time) error {
	column, ok := paymentColumns[field]
	if !ok {
		return fmt.Errorf("unknown payment field %q", field)
	}

	query := r.db.Rebind(`UPDATE packages SET ` + column + ` = ?, updated_at = ? WHERE id = ?`)

	_, err := r.db.ExecContext(ctx, query, paid, at, id)
	return err
}
