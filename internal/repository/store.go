package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type sqlStore struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
	tx  *sqlx.Tx
}

// NewSQLStore returns a Store backed by db. Both postgres and sqlite are
// supported; queries are written with '?' and rebound per driver.
func NewSQLStore(db *sqlx.DB) Store {
	return &sqlStore{db: db, ext: db}
}

func (s *sqlStore) Clients() ClientRepository {
	return &clientRepository{db: s.ext}
}

func (s *sqlStore) Packages() PackageRepository {
	return &packageRepository{db: s.ext, lockRows: s.tx != nil && s.db.DriverName() == "postgres"}
}

func (s *sqlStore) Videos() VideoRepository {
	return &videoRepository{db: s.ext}
}

func (s *sqlStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlStore{db: s.db, ext: tx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
