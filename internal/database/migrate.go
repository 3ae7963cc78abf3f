package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema for the connected driver. Statements are
// idempotent so it is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	if db.DriverName() == "postgres" {
		stmts = postgresSchema
	} else {
		stmts = sqliteSchema
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		agency_name TEXT NULL,
		is_frequent BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS packages (
		id UUID PRIMARY KEY,
		client_id UUID NULL,
		client_name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('package', 'post')),
		total_value NUMERIC NOT NULL CHECK (total_value >= 0),
		juninho_commission NUMERIC NOT NULL,
		natalia_commission NUMERIC NOT NULL,
		engagement_cost NUMERIC NOT NULL,
		pro_labore NUMERIC NOT NULL,
		net_profit NUMERIC NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('active', 'completed', 'cancelled')),
		total_value_paid BOOLEAN NOT NULL DEFAULT FALSE,
		juninho_commission_paid BOOLEAN NOT NULL DEFAULT FALSE,
		natalia_commission_paid BOOLEAN NOT NULL DEFAULT FALSE,
		engagement_cost_paid BOOLEAN NOT NULL DEFAULT FALSE,
		pro_labore_paid BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_packages_client_id ON packages(client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_packages_status ON packages(status);`,
	`CREATE TABLE IF NOT EXISTS videos (
		id UUID PRIMARY KEY,
		package_id UUID NOT NULL REFERENCES packages(id),
		video_number INTEGER NOT NULL CHECK (video_number > 0),
		status TEXT NOT NULL CHECK (status IN ('briefing_sent', 'video_posted', 'sent_to_group', 'engaged')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (package_id, video_number)
	);`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		agency_name TEXT NULL,
		is_frequent BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS packages (
		id TEXT PRIMARY KEY,
		client_id TEXT NULL,
		client_name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('package', 'post')),
		total_value TEXT NOT NULL,
		juninho_commission TEXT NOT NULL,
		natalia_commission TEXT NOT NULL,
		engagement_cost TEXT NOT NULL,
		pro_labore TEXT NOT NULL,
		net_profit TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('active', 'completed', 'cancelled')),
		total_value_paid BOOLEAN NOT NULL DEFAULT 0,
		juninho_commission_paid BOOLEAN NOT NULL DEFAULT 0,
		natalia_commission_paid BOOLEAN NOT NULL DEFAULT 0,
		engagement_cost_paid BOOLEAN NOT NULL DEFAULT 0,
		pro_labore_paid BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE INDEX IF NOT EXISTS idx_packages_client_id ON packages(client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_packages_status ON packages(status);`,
	`CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		package_id TEXT NOT NULL,
		video_number INTEGER NOT NULL CHECK (video_number > 0),
		status TEXT NOT NULL CHECK (status IN ('briefing_sent', 'video_posted', 'sent_to_group', 'engaged')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (package_id, video_number),
		FOREIGN KEY (package_id) REFERENCES packages(id)
	);`,
}
