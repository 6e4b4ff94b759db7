package dialect

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun/dialect/mssqldialect"
	"github.com/uptrace/bun/schema"
)

type sqlServer struct{}

func (sqlServer) Vendor() Vendor { return SQLServer }

func (sqlServer) Bun() schema.Dialect { return mssqldialect.New() }

func (sqlServer) Paginate(offset, limit int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}

func (sqlServer) TopN(n int) (string, string) {
	return fmt.Sprintf("TOP %d ", n), ""
}

func (sqlServer) InsertReturning(table, idColumn string, columns []string) (string, bool) {
	return fmt.Sprintf("INSERT INTO %s (%s) OUTPUT INSERTED.%s VALUES (%s)",
		table, strings.Join(columns, ", "), idColumn, placeholders(len(columns))), true
}

func (sqlServer) MonthDays(column string) string {
	return "DAY(EOMONTH(" + column + "))"
}

func (sqlServer) YearOf(column string) string {
	return "YEAR(" + column + ")"
}

func (sqlServer) YearMonthOf(column string) string {
	return "FORMAT(" + column + ", 'yyyy-MM')"
}

func (sqlServer) Left(column string, n int) string {
	return fmt.Sprintf("LEFT(%s, %d)", column, n)
}

func (sqlServer) TableExists(table string) string {
	return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = '" + table + "'"
}

func (sqlServer) Types() Types {
	return Types{
		Identity:  "INT IDENTITY(1,1) PRIMARY KEY",
		Key:       "INT NOT NULL PRIMARY KEY",
		Int:       "INT",
		Money:     "DECIMAL(18,2)",
		Name:      "NVARCHAR(255)",
		Short:     "NVARCHAR(50)",
		Month:     "VARCHAR(10)",
		Date:      "DATE",
		CreatedAt: "DATETIME2 DEFAULT SYSDATETIME()",
		Message:   "NVARCHAR(2000)",
	}
}
