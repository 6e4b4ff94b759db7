package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Database {
	t.Helper()

	db, err := Open(context.Background(), Options{
		Name:         "test",
		Vendor:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(context.Background(), `
		CREATE TABLE items (
			ItemID INTEGER PRIMARY KEY AUTOINCREMENT,
			Name VARCHAR(50),
			Price DECIMAL(18,2)
		)`)
	require.NoError(t, err)

	return db
}

func TestFetchRowsKeepsColumnOrder(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	_, err := db.InsertID(ctx, "items", "ItemID", []string{"Name", "Price"}, "pen", 1.5)
	require.NoError(t, err)

	rows, err := db.FetchRows(ctx, "SELECT Price, Name, ItemID FROM items")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"Price", "Name", "ItemID"}, rows[0].Columns())
	assert.Equal(t, "pen", rows[0].String("Name"))
	assert.Equal(t, 1.5, rows[0].Float("Price"))

	b, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Equal(t, `{"Price":1.5,"Name":"pen","ItemID":1}`, string(b))
}

func TestFetchRowsEmpty(t *testing.T) {
	db := openTest(t)

	rows, err := db.FetchRows(context.Background(), "SELECT * FROM items")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestFetchScalarDefaults(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	n, err := db.FetchInt(ctx, "SELECT ItemID FROM items WHERE ItemID = ?", 42)
	require.NoError(t, err)
	assert.Zero(t, n)

	sum, err := db.FetchFloat(ctx, "SELECT SUM(Price) FROM items")
	require.NoError(t, err)
	assert.Zero(t, sum)

	_, err = db.InsertID(ctx, "items", "ItemID", []string{"Name", "Price"}, "book", 10.25)
	require.NoError(t, err)

	sum, err = db.FetchFloat(ctx, "SELECT SUM(Price) FROM items")
	require.NoError(t, err)
	assert.Equal(t, 10.25, sum)

	n, err = db.FetchInt(ctx, "SELECT COUNT(*) FROM items")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestEachAndExec(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := db.InsertID(ctx, "items", "ItemID", []string{"Name", "Price"}, name, 1)
		require.NoError(t, err)
	}

	affected, err := db.Exec(ctx, "UPDATE items SET Price = ? WHERE Name <> ?", 2, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var names []string
	err = db.Each(ctx, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	}, "SELECT Name FROM items WHERE Price = ? ORDER BY Name", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, names)
}

func TestDriverErrorsAreQueryErrors(t *testing.T) {
	db := openTest(t)

	_, err := db.FetchRows(context.Background(), "SELECT nope FROM missing_table")
	require.Error(t, err)
	assert.True(t, IsQueryError(err))
	assert.Contains(t, err.Error(), "test database")
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN("db:3306", "hr", "secret", "payroll")
	assert.Contains(t, dsn, "hr:secret@tcp(db:3306)/payroll")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestNormalizeMySQLDSN(t *testing.T) {
	dsn, err := NormalizeMySQLDSN("hr:pw@tcp(db:3306)/payroll?parseTime=false&charset=utf8mb4")
	require.NoError(t, err)
	assert.Contains(t, dsn, "hr:pw@tcp(db:3306)/payroll")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	_, err = NormalizeMySQLDSN("no-slash")
	assert.Error(t, err)
}
