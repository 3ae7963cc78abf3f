package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ritmodivulga/promo-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type clientRepository struct {
	db sqlx.ExtContext
}

const clientColumns = `id, name, agency_name, is_frequent, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := r.db.Rebind(`
		INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.AgencyName,
		client.IsFrequent,
		client.CreatedAt,
		client.UpdatedAt,
	)

	return err
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := r.db.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?`)

	var client domain.Client
	if err := sqlx.GetContext(ctx, r.db, &client, query, id); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name, created_at`

	var clients []*domain.Client
	if err := sqlx.SelectContext(ctx, r.db, &clients, query); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := r.db.Rebind(`
		UPDATE clients
		SET name = ?, agency_name = ?, is_frequent = ?, updated_at = ?
		WHERE id = ?
	`)

	_, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.AgencyName,
		client.IsFrequent,
		client.UpdatedAt,
		client.ID,
	)

	return err
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM clients WHERE id = ?`)

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
