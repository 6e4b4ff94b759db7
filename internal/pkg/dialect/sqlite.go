package dialect

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

type sqlite struct{}

func (sqlite) Vendor() Vendor { return SQLite }

func (sqlite) Bun() schema.Dialect { return sqlitedialect.New() }

func (sqlite) Paginate(offset, limit int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

func (sqlite) TopN(n int) (string, string) {
	return "", fmt.Sprintf(" LIMIT %d", n)
}

func (sqlite) InsertReturning(table, idColumn string, columns []string) (string, bool) {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(columns, ", "), placeholders(len(columns)), idColumn), true
}

func (sqlite) MonthDays(column string) string {
	return "CAST(strftime('%d', date(" + column + ", 'start of month', '+1 month', '-1 day')) AS INTEGER)"
}

func (sqlite) YearOf(column string) string {
	return "CAST(strftime('%Y', " + column + ") AS INTEGER)"
}

func (sqlite) YearMonthOf(column string) string {
	return "strftime('%Y-%m', " + column + ")"
}

func (sqlite) Left(column string, n int) string {
	return fmt.Sprintf("substr(%s, 1, %d)", column, n)
}

func (sqlite) TableExists(table string) string {
	return "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = '" + table + "'"
}

func (sqlite) Types() Types {
	return Types{
		Identity:  "INTEGER PRIMARY KEY AUTOINCREMENT",
		Key:       "INTEGER NOT NULL PRIMARY KEY",
		Int:       "INTEGER",
		Money:     "DECIMAL(18,2)",
		Name:      "VARCHAR(255)",
		Short:     "VARCHAR(50)",
		Month:     "VARCHAR(10)",
		Date:      "DATE",
		CreatedAt: "DATETIME DEFAULT CURRENT_TIMESTAMP",
		Message:   "TEXT",
	}
}
