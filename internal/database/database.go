package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ritmodivulga/promo-engine/internal/config"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the configured SQL database and applies pool settings.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := sqlx.Connect("postgres", cfg.URL)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		return db, nil
	case "sqlite":
		return OpenSQLite(cfg.URL)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// OpenSQLite opens an embedded database. A single connection keeps
// transactions serialized and makes ":memory:" databases usable.
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", sqliteDSN(dsn))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

// sqliteDSN makes the driver write times in a format it can scan back into
// time.Time, unless the caller picked a format already.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_time_format=sqlite"
}
