package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"hrpayroll/backend/internal/pkg/dialect"
)

// InsertID inserts one row through db, which may be a connection or a
// transaction, and returns the generated id.
func InsertID(ctx context.Context, db bun.IConn, d dialect.Dialect, table, idColumn string, columns []string, args ...interface{}) (int64, error) {
	if query, ok := d.InsertReturning(table, idColumn, columns); ok {
		var id int64
		if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "))

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}
