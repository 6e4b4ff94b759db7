// Package dialect holds the vendor-specific SQL fragments. One Dialect is
// chosen per backend at startup; callers never branch on the vendor.
package dialect

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun/schema"
)

type Vendor string

const (
	SQLServer Vendor = "sqlserver"
	MySQL     Vendor = "mysql"
	Postgres  Vendor = "postgres"
	SQLite    Vendor = "sqlite"
)

// ErrUnknownVendor is returned by New for an unsupported vendor name.
var ErrUnknownVendor = errors.New("unknown database vendor")

// Dialect renders the SQL that differs between vendors. Placeholders are not
// part of it: queries use '?' and bun's formatter renders the arguments.
type Dialect interface {
	Vendor() Vendor

	// Bun is the bun dialect used to open the database.
	Bun() schema.Dialect

	// Paginate renders the clause that follows ORDER BY.
	Paginate(offset, limit int) string

	// TopN splits a row cap into a SELECT prefix and a trailing clause;
	// one of them is always empty.
	TopN(n int) (top, limit string)

	// InsertReturning renders an INSERT that yields the generated id as a
	// single row. It returns ok=false on vendors without RETURNING or
	// OUTPUT; the caller then reads LastInsertId.
	InsertReturning(table, idColumn string, columns []string) (query string, ok bool)

	// MonthDays renders the number of days in the month of a date-like column.
	MonthDays(column string) string

	// YearOf renders the calendar year of a date column as an integer.
	YearOf(column string) string

	// YearMonthOf renders a date column as 'YYYY-MM' text.
	YearMonthOf(column string) string

	// Left renders the first n characters of a text column.
	Left(column string, n int) string

	// TableExists renders a query counting the tables named table in the
	// current database.
	TableExists(table string) string

	// Types lists the column types used by the migrations.
	Types() Types
}

// Types are the DDL column types a vendor uses.
type Types struct {
	Identity  string // auto-generated integer primary key
	Key       string // integer primary key supplied by the caller
	Int       string
	Money     string
	Name      string
	Short     string
	Month     string
	Date      string
	CreatedAt string
	Message   string
}

// Expand replaces the $identity, $key, $int, $money, $name, $short, $month,
// $date, $created and $message tokens of a DDL statement.
func (t Types) Expand(ddl string) string {
	return strings.NewReplacer(
		"$identity", t.Identity,
		"$key", t.Key,
		"$int", t.Int,
		"$money", t.Money,
		"$name", t.Name,
		"$short", t.Short,
		"$month", t.Month,
		"$date", t.Date,
		"$created", t.CreatedAt,
		"$message", t.Message,
	).Replace(ddl)
}

// New returns the Dialect for a vendor name such as "sqlserver" or "mysql".
func New(vendor string) (Dialect, error) {
	switch Vendor(strings.ToLower(strings.TrimSpace(vendor))) {
	case SQLServer, "mssql":
		return sqlServer{}, nil
	case MySQL:
		return mySQL{}, nil
	case Postgres, "postgresql", "pg":
		return postgres{}, nil
	case SQLite, "sqlite3":
		return sqlite{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownVendor, "%q", vendor)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
