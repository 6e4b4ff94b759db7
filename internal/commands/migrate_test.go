package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

func openSQLite(t *testing.T) *sqldb.Database {
	t.Helper()

	db, err := sqldb.Open(context.Background(), sqldb.Options{
		Name:         "test",
		Vendor:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "migrate.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestMigrateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	primary, secondary := openSQLite(t), openSQLite(t)

	require.NoError(t, Migrate(ctx, zerolog.Nop(), primary, secondary))
	require.NoError(t, Migrate(ctx, zerolog.Nop(), primary, secondary))

	version, err := primary.FetchInt(ctx, "SELECT version FROM schema_migrations")
	require.NoError(t, err)
	assert.Equal(t, int64(len(primaryScheme)), version)

	version, err = secondary.FetchInt(ctx, "SELECT version FROM schema_migrations")
	require.NoError(t, err)
	assert.Equal(t, int64(len(secondaryScheme)), version)

	for _, table := range []string{"departments", "positions", "employees", "dividends", "salaries", "attendance"} {
		n, err := secondary.FetchInt(ctx, secondary.Dialect.TableExists(table))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, table)
	}

	n, err := primary.FetchInt(ctx, primary.Dialect.TableExists("salaries"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMigrateRetriesDirtyVersion(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	broken := []Scheme{
		{Index: 1, Description: "ok", Query: "CREATE TABLE a (id $int)"},
		{Index: 2, Description: "broken", Query: "CREATE TABLE b (id $int"},
	}
	err := MigrateUP(ctx, zerolog.Nop(), db, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version: 2")

	rows, err := db.FetchRows(ctx, "SELECT version, dirty, last_error FROM schema_migrations")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(2), rows[0].Float("version"))
	assert.Equal(t, float64(1), rows[0].Float("dirty"))
	assert.NotEmpty(t, rows[0].String("last_error"))

	fixed := []Scheme{
		broken[0],
		{Index: 2, Description: "fixed", Query: "CREATE TABLE b (id $int)"},
	}
	require.NoError(t, MigrateUP(ctx, zerolog.Nop(), db, fixed))

	dirty, err := db.FetchInt(ctx, "SELECT dirty FROM schema_migrations")
	require.NoError(t, err)
	assert.Zero(t, dirty)
}

func TestSchemes(t *testing.T) {
	s, err := Schemes("primary")
	require.NoError(t, err)
	assert.Len(t, s, len(primaryScheme))

	_, err = Schemes("tertiary")
	assert.Error(t, err)
}
