package dialect

import (
	"fmt"

	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/schema"
)

type mySQL struct{}

func (mySQL) Vendor() Vendor { return MySQL }

func (mySQL) Bun() schema.Dialect { return mysqldialect.New() }

func (mySQL) Paginate(offset, limit int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

func (mySQL) TopN(n int) (string, string) {
	return "", fmt.Sprintf(" LIMIT %d", n)
}

// MySQL has no RETURNING; the id comes from LastInsertId.
func (mySQL) InsertReturning(string, string, []string) (string, bool) {
	return "", false
}

func (mySQL) MonthDays(column string) string {
	return "DAY(LAST_DAY(" + column + "))"
}

func (mySQL) YearOf(column string) string {
	return "YEAR(" + column + ")"
}

func (mySQL) YearMonthOf(column string) string {
	return "DATE_FORMAT(" + column + ", '%Y-%m')"
}

func (mySQL) Left(column string, n int) string {
	return fmt.Sprintf("LEFT(%s, %d)", column, n)
}

func (mySQL) TableExists(table string) string {
	return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = '" + table + "'"
}

func (mySQL) Types() Types {
	return Types{
		Identity:  "INT AUTO_INCREMENT PRIMARY KEY",
		Key:       "INT NOT NULL PRIMARY KEY",
		Int:       "INT",
		Money:     "DECIMAL(18,2)",
		Name:      "VARCHAR(255)",
		Short:     "VARCHAR(50)",
		Month:     "VARCHAR(10)",
		Date:      "DATE",
		CreatedAt: "DATETIME DEFAULT CURRENT_TIMESTAMP",
		Message:   "TEXT",
	}
}
