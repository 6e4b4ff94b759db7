package dialect

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/schema"
)

type postgres struct{}

func (postgres) Vendor() Vendor { return Postgres }

func (postgres) Bun() schema.Dialect { return pgdialect.New() }

func (postgres) Paginate(offset, limit int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

func (postgres) TopN(n int) (string, string) {
	return "", fmt.Sprintf(" LIMIT %d", n)
}

func (postgres) InsertReturning(table, idColumn string, columns []string) (string, bool) {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(columns, ", "), placeholders(len(columns)), idColumn), true
}

func (postgres) MonthDays(column string) string {
	return "CAST(EXTRACT(DAY FROM (date_trunc('month', CAST(" + column +
		" AS date)) + interval '1 month' - interval '1 day')) AS INTEGER)"
}

func (postgres) YearOf(column string) string {
	return "CAST(EXTRACT(YEAR FROM " + column + ") AS INTEGER)"
}

func (postgres) YearMonthOf(column string) string {
	return "to_char(" + column + ", 'YYYY-MM')"
}

func (postgres) Left(column string, n int) string {
	return fmt.Sprintf("LEFT(%s, %d)", column, n)
}

func (postgres) TableExists(table string) string {
	return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = '" + table + "'"
}

func (postgres) Types() Types {
	return Types{
		Identity:  "SERIAL PRIMARY KEY",
		Key:       "INT NOT NULL PRIMARY KEY",
		Int:       "INT",
		Money:     "NUMERIC(18,2)",
		Name:      "VARCHAR(255)",
		Short:     "VARCHAR(50)",
		Month:     "VARCHAR(10)",
		Date:      "DATE",
		CreatedAt: "TIMESTAMP DEFAULT now()",
		Message:   "TEXT",
	}
}
