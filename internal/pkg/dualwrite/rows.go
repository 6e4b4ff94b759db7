package dualwrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Set is one column assignment of UpdateRow.
type Set struct {
	Column string
	Value  interface{}
}

// InsertMirror copies a row the primary created into the secondary, keeping
// the primary's id. It fails with ErrDuplicateKey when the id is taken.
func InsertMirror(ctx context.Context, tx Tx, table, idColumn string, id int64, columns []string, args ...interface{}) error {
	if err := EnsureAbsent(ctx, tx, table, idColumn, id); err != nil {
		return err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?%s)",
		table, idColumn, strings.Join(columns, ", "), strings.Repeat(", ?", len(columns)))

	if _, err := tx.ExecContext(ctx, query, append([]interface{}{id}, args...)...); err != nil {
		return errors.Wrapf(err, "inserting %s %d on %s", table, id, tx.Backend)
	}
	return nil
}

// UpdateRow applies sets to one row and returns the number of matched rows.
func UpdateRow(ctx context.Context, tx Tx, table, idColumn string, id int64, sets ...Set) (int64, error) {
	if len(sets) == 0 {
		return 0, nil
	}

	q := tx.NewUpdate().TableExpr(table).Where(idColumn+" = ?", id)
	for _, s := range sets {
		q.Set(s.Column+" = ?", s.Value)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "updating %s %d on %s", table, id, tx.Backend)
	}
	return res.RowsAffected()
}

// DeleteRow deletes one row and returns the number of deleted rows.
func DeleteRow(ctx context.Context, tx Tx, table, idColumn string, id int64) (int64, error) {
	res, err := tx.NewDelete().TableExpr(table).Where(idColumn+" = ?", id).Exec(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "deleting %s %d on %s", table, id, tx.Backend)
	}
	return res.RowsAffected()
}
