// Package report builds the yearly salary, attendance and financial reports.
package report

import (
	"context"

	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/month"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

// Repository reads salaries and attendance from the secondary and dividends
// from the primary.
type Repository struct {
	primary   *sqldb.Database
	secondary *sqldb.Database
}

func NewRepository(primary, secondary *sqldb.Database) *Repository {
	return &Repository{primary: primary, secondary: secondary}
}

func (r Repository) Salary(ctx context.Context, year int) (entity.YearReport, error) {
	pattern := month.YearPattern(year)

	monthly, err := r.secondary.FetchRows(ctx, `
		SELECT
			SalaryMonth,
			COUNT(*) AS total_records,
			SUM(NetSalary) AS total_salary,
			AVG(NetSalary) AS avg_salary,
			MIN(NetSalary) AS min_salary,
			MAX(NetSalary) AS max_salary
		FROM salaries
		WHERE SalaryMonth LIKE ?
		GROUP BY SalaryMonth
		ORDER BY SalaryMonth`, pattern)
	if err != nil {
		return entity.YearReport{}, errors.Wrap(err, "salary report by month")
	}

	summary, err := r.secondary.FetchRows(ctx, `
		SELECT
			COUNT(*) AS total_records,
			COALESCE(SUM(NetSalary), 0) AS total_salary,
			COALESCE(AVG(NetSalary), 0) AS avg_salary,
			COALESCE(MIN(NetSalary), 0) AS min_salary,
			COALESCE(MAX(NetSalary), 0) AS max_salary
		FROM salaries
		WHERE SalaryMonth LIKE ?`, pattern)
	if err != nil {
		return entity.YearReport{}, errors.Wrap(err, "salary report summary")
	}

	return yearReport(year, monthly, summary), nil
}

func (r Repository) Attendance(ctx context.Context, year int) (entity.YearReport, error) {
	pattern := month.YearPattern(year)

	monthly, err := r.secondary.FetchRows(ctx, `
		SELECT
			AttendanceMonth,
			COUNT(*) AS total_records,
			SUM(WorkDays) AS total_workdays,
			SUM(LeaveDays) AS total_leavedays,
			SUM(AbsentDays) AS total_absentdays,
			AVG(WorkDays) AS avg_workdays
		FROM attendance
		WHERE AttendanceMonth LIKE ?
		GROUP BY AttendanceMonth
		ORDER BY AttendanceMonth`, pattern)
	if err != nil {
		return entity.YearReport{}, errors.Wrap(err, "attendance report by month")
	}

	summary, err := r.secondary.FetchRows(ctx, `
		SELECT
			COUNT(*) AS total_records,
			COALESCE(SUM(WorkDays), 0) AS total_workdays,
			COALESCE(SUM(LeaveDays), 0) AS total_leavedays,
			COALESCE(SUM(AbsentDays), 0) AS total_absentdays,
			COALESCE(AVG(WorkDays), 0) AS avg_workdays
		FROM attendance
		WHERE AttendanceMonth LIKE ?`, pattern)
	if err != nil {
		return entity.YearReport{}, errors.Wrap(err, "attendance report summary")
	}

	return yearReport(year, monthly, summary), nil
}

// Financial adds up the salaries and dividends paid in a year.
func (r Repository) Financial(ctx context.Context, year int) (entity.FinancialReport, error) {
	pattern := month.YearPattern(year)
	paidYear := r.primary.Dialect.YearOf("DividendDate")
	paidMonth := r.primary.Dialect.YearMonthOf("DividendDate")

	salary, err := r.secondary.FetchFloat(ctx,
		"SELECT COALESCE(SUM(NetSalary), 0) FROM salaries WHERE SalaryMonth LIKE ?", pattern)
	if err != nil {
		return entity.FinancialReport{}, errors.Wrap(err, "summing salaries")
	}

	dividends, err := r.primary.FetchFloat(ctx,
		"SELECT COALESCE(SUM(DividendAmount), 0) FROM dividends WHERE "+paidYear+" = ?", year)
	if err != nil {
		return entity.FinancialReport{}, errors.Wrap(err, "summing dividends")
	}

	monthlySalary, err := r.secondary.FetchRows(ctx, `
		SELECT SalaryMonth AS month, SUM(NetSalary) AS salary_amount
		FROM salaries
		WHERE SalaryMonth LIKE ?
		GROUP BY SalaryMonth
		ORDER BY SalaryMonth`, pattern)
	if err != nil {
		return entity.FinancialReport{}, errors.Wrap(err, "salaries by month")
	}

	monthlyDividends, err := r.primary.FetchRows(ctx, `
		SELECT `+paidMonth+` AS month, SUM(DividendAmount) AS dividend_amount
		FROM dividends
		WHERE `+paidYear+` = ?
		GROUP BY `+paidMonth+`
		ORDER BY `+paidMonth, year)
	if err != nil {
		return entity.FinancialReport{}, errors.Wrap(err, "dividends by month")
	}

	return entity.FinancialReport{
		Year:             year,
		TotalSalary:      salary,
		TotalDividends:   dividends,
		TotalFinancial:   salary + dividends,
		MonthlySalary:    monthlySalary,
		MonthlyDividends: monthlyDividends,
	}, nil
}

func yearReport(year int, monthly, summary []sqldb.Row) entity.YearReport {
	report := entity.YearReport{Year: year, MonthlyBreakdown: monthly}
	if len(summary) > 0 {
		report.YearlySummary = summary[0]
	}
	return report
}
