package sqldb

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// QueryError is the single category every driver failure is reported as.
type QueryError struct {
	Backend string
	Err     error
}

func (e *QueryError) Error() string {
	return e.Backend + " database: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError reports whether err came from a backend.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

func (d *Database) wrap(err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Backend: d.Name, Err: err}
}

// FetchRows runs a query and returns every row as an ordered mapping.
func (d *Database) FetchRows(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return nil, d.wrap(err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.wrap(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, d.wrap(err)
	}

	list := []Row{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, d.wrap(err)
		}
		list = append(list, newRow(columns, values))
	}

	return list, d.wrap(rows.Err())
}

// FetchFloat returns the first column of the first row. A missing row or a
// NULL value yields 0.
func (d *Database) FetchFloat(ctx context.Context, query string, args ...interface{}) (float64, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return 0, d.wrap(err)
	}
	defer conn.Close()

	var v sql.NullFloat64
	err = conn.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, d.wrap(err)
	}

	return v.Float64, nil
}

// FetchInt is FetchFloat coerced to an integer.
func (d *Database) FetchInt(ctx context.Context, query string, args ...interface{}) (int64, error) {
	v, err := d.FetchFloat(ctx, query, args...)
	return int64(v), err
}

// Each runs a query and calls scan once per row.
func (d *Database) Each(ctx context.Context, scan func(rows *sql.Rows) error, query string, args ...interface{}) error {
	conn, err := d.Conn(ctx)
	if err != nil {
		return d.wrap(err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return d.wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return d.wrap(err)
		}
	}

	return d.wrap(rows.Err())
}

// Exec runs a statement and returns the number of affected rows.
func (d *Database) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return 0, d.wrap(err)
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, d.wrap(err)
	}

	n, err := res.RowsAffected()
	return n, d.wrap(err)
}

// InsertID runs an INSERT against db and returns the id the backend
// generated, using RETURNING/OUTPUT where the dialect has it.
func (d *Database) InsertID(ctx context.Context, table, idColumn string, columns []string, args ...interface{}) (int64, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return 0, d.wrap(err)
	}
	defer conn.Close()

	id, err := InsertID(ctx, conn, d.Dialect, table, idColumn, columns, args...)
	return id, d.wrap(err)
}
