// Package testdb opens migrated SQLite backends for package tests.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"hrpayroll/backend/internal/commands"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

// Open returns a fresh primary and secondary database, both migrated and
// closed when the test ends.
func Open(t *testing.T) (primary, secondary *sqldb.Database) {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	open := func(name string) *sqldb.Database {
		db, err := sqldb.Open(ctx, sqldb.Options{
			Name:         name,
			Vendor:       "sqlite",
			DSN:          "file:" + filepath.Join(dir, name+".db"),
			MaxOpenConns: 1,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return db
	}

	primary = open("primary")
	secondary = open("secondary")

	require.NoError(t, commands.Migrate(ctx, zerolog.Nop(), primary, secondary))

	return primary, secondary
}
