package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritmodivulga/promo-engine/internal/config"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn      string
		expected string
	}{
		{dsn: ":memory:", expected: ":memory:?_time_format=sqlite"},
		{dsn: "file:promo.db?cache=shared", expected: "file:promo.db?cache=shared&_time_format=sqlite"},
		{dsn: "file::memory:?_time_format=sqlite", expected: "file::memory:?_time_format=sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.expected, sqliteDSN(tt.dsn))
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.Get(&fk, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, fk)

	require.NoError(t, Migrate(ctx, db))

	at := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	_, err = db.Exec(`CREATE TABLE stamps (at DATETIME NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO stamps (at) VALUES (?)`, at)
	require.NoError(t, err)

	var got time.Time
	require.NoError(t, db.Get(&got, `SELECT at FROM stamps`))
	assert.True(t, at.Equal(got))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mongo"})

	assert.ErrorContains(t, err, "unsupported database driver")
}
