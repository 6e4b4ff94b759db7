package entity

import "hrpayroll/backend/internal/pkg/repository/sqldb"

// YearReport is a per-month breakdown of one year with its summary row.
type YearReport struct {
	Year             int         `json:"year"`
	MonthlyBreakdown []sqldb.Row `json:"monthly_breakdown"`
	YearlySummary    sqldb.Row   `json:"yearly_summary"`
}

type FinancialReport struct {
	Year             int         `json:"year"`
	TotalSalary      float64     `json:"total_salary"`
	TotalDividends   float64     `json:"total_dividends"`
	TotalFinancial   float64     `json:"total_financial"`
	MonthlySalary    []sqldb.Row `json:"monthly_salary"`
	MonthlyDividends []sqldb.Row `json:"monthly_dividends"`
}

type SearchResult struct {
	Employees   []sqldb.Row `json:"employees"`
	Departments []sqldb.Row `json:"departments"`
	Positions   []sqldb.Row `json:"positions"`
	Salaries    []sqldb.Row `json:"salaries"`
	Attendance  []sqldb.Row `json:"attendance"`
}
