// Package dashboard aggregates both backends for the landing page.
package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/month"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/pkg/stats"
)

const (
	DefaultLimit  = 5
	MaxLimit      = 20
	DefaultMonths = 6
	MaxMonths     = 12
)

// Repository reads employees and dividends from the primary and salaries
// and attendance from the secondary.
type Repository struct {
	primary      *sqldb.Database
	secondary    *sqldb.Database
	activeStatus string
	now          func() time.Time
}

func NewRepository(primary, secondary *sqldb.Database, activeStatus string) *Repository {
	return &Repository{
		primary:      primary,
		secondary:    secondary,
		activeStatus: activeStatus,
		now:          time.Now,
	}
}

// ClampLimit applies the default and the cap of the top lists.
func ClampLimit(limit *int) int {
	switch {
	case limit == nil || *limit <= 0:
		return DefaultLimit
	case *limit > MaxLimit:
		return MaxLimit
	}
	return *limit
}

// ClampMonths keeps a trend window within 1 to 12 months.
func ClampMonths(months *int) int {
	switch {
	case months == nil:
		return DefaultMonths
	case *months < 1:
		return 1
	case *months > MaxMonths:
		return MaxMonths
	}
	return *months
}

func (r Repository) Overview(ctx context.Context) (entity.Overview, error) {
	now := r.now()
	current := month.First(now)

	var (
		o   entity.Overview
		err error
	)
	o.CurrentMonth = current[:7]
	o.CurrentYear = strconv.Itoa(now.Year())

	counts := []struct {
		dst   *int64
		query string
		args  []interface{}
	}{
		{&o.TotalEmployees, "SELECT COUNT(*) FROM employees", nil},
		{&o.TotalDepartments, "SELECT COUNT(*) FROM departments", nil},
		{&o.TotalPositions, "SELECT COUNT(*) FROM positions", nil},
		{&o.ActiveEmployees, "SELECT COUNT(*) FROM employees WHERE Status = ?", []interface{}{r.activeStatus}},
	}
	for _, c := range counts {
		if *c.dst, err = r.primary.FetchInt(ctx, c.query, c.args...); err != nil {
			return entity.Overview{}, errors.Wrap(err, "counting overview")
		}
	}

	if o.TotalSalaryCurrentMonth, err = r.monthSalary(ctx, current); err != nil {
		return entity.Overview{}, err
	}
	if o.TotalWorkdaysCurrentMonth, err = r.monthWorkdays(ctx, current); err != nil {
		return entity.Overview{}, err
	}

	o.TotalDividendsCurrentYear, err = r.primary.FetchFloat(ctx,
		"SELECT COALESCE(SUM(DividendAmount), 0) FROM dividends WHERE "+r.primary.Dialect.YearOf("DividendDate")+" = ?",
		now.Year())
	if err != nil {
		return entity.Overview{}, errors.Wrap(err, "summing dividends")
	}

	return o, nil
}

// Comparison compares the current month with the previous one. The previous
// head count leaves out employees hired this month.
func (r Repository) Comparison(ctx context.Context) (entity.Comparison, error) {
	now := r.now()
	current := month.First(now)
	previous := month.First(time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC))

	employees, err := r.primary.FetchInt(ctx, "SELECT COUNT(*) FROM employees")
	if err != nil {
		return entity.Comparison{}, errors.Wrap(err, "counting employees")
	}
	employeesBefore, err := r.primary.FetchInt(ctx,
		"SELECT COUNT(*) FROM employees WHERE HireDate IS NULL OR HireDate < ?", current)
	if err != nil {
		return entity.Comparison{}, errors.Wrap(err, "counting earlier employees")
	}

	workdays, err := r.monthWorkdays(ctx, current)
	if err != nil {
		return entity.Comparison{}, err
	}
	workdaysBefore, err := r.monthWorkdays(ctx, previous)
	if err != nil {
		return entity.Comparison{}, err
	}

	salary, err := r.monthSalary(ctx, current)
	if err != nil {
		return entity.Comparison{}, err
	}
	salaryBefore, err := r.monthSalary(ctx, previous)
	if err != nil {
		return entity.Comparison{}, err
	}

	return entity.Comparison{
		CurrentMonth:         current[:7],
		PreviousMonth:        previous[:7],
		TotalEmployeesChange: stats.Compare(float64(employees), float64(employeesBefore)),
		TotalWorkdaysChange:  stats.Compare(float64(workdays), float64(workdaysBefore)),
		TotalSalaryChange:    stats.Compare(salary, salaryBefore),
	}, nil
}

// TopEmployees returns the newest hires.
func (r Repository) TopEmployees(ctx context.Context, limit int) ([]entity.NewHire, error) {
	top, tail := r.primary.Dialect.TopN(limit)
	query := `
		SELECT ` + top + `e.EmployeeID, e.FullName, e.HireDate, d.DepartmentName, p.PositionName
		FROM employees e
		LEFT JOIN departments d ON d.DepartmentID = e.DepartmentID
		LEFT JOIN positions p ON p.PositionID = e.PositionID
		ORDER BY e.HireDate DESC, e.EmployeeID DESC` + tail

	list := []entity.NewHire{}
	err := r.primary.Each(ctx, func(rows *sql.Rows) error {
		var (
			h         entity.NewHire
			hire      sql.NullTime
			dept, pos sql.NullString
		)
		if err := rows.Scan(&h.EmployeeID, &h.FullName, &hire, &dept, &pos); err != nil {
			return err
		}
		h.HireDate = entity.DateOf(hire)
		h.DepartmentName = entity.StringOf(dept)
		h.PositionName = entity.StringOf(pos)
		list = append(list, h)
		return nil
	}, query)

	return list, errors.Wrap(err, "selecting newest employees")
}

// TopDepartments ranks departments by head count.
func (r Repository) TopDepartments(ctx context.Context, limit int) ([]entity.DepartmentHeadcount, error) {
	top, tail := r.primary.Dialect.TopN(limit)
	query := `
		SELECT ` + top + `d.DepartmentID, d.DepartmentName, COUNT(e.EmployeeID) AS EmployeeCount
		FROM departments d
		LEFT JOIN employees e ON e.DepartmentID = d.DepartmentID
		GROUP BY d.DepartmentID, d.DepartmentName
		ORDER BY EmployeeCount DESC, d.DepartmentID` + tail

	list := []entity.DepartmentHeadcount{}
	err := r.primary.Each(ctx, func(rows *sql.Rows) error {
		var d entity.DepartmentHeadcount
		if err := rows.Scan(&d.DepartmentID, &d.DepartmentName, &d.EmployeeCount); err != nil {
			return err
		}
		list = append(list, d)
		return nil
	}, query)

	return list, errors.Wrap(err, "ranking departments")
}

// Trends returns hires, salaries and work days of the last months, oldest
// first. Months without data are 0.
func (r Repository) Trends(ctx context.Context, months int) (entity.Trends, error) {
	window := month.Last(r.now(), months)
	since := window[0] + "-01"

	hired := r.primary.Dialect.YearMonthOf("HireDate")
	employees, err := r.series(ctx, r.primary,
		fmt.Sprintf("SELECT %s, COUNT(*) FROM employees WHERE HireDate >= ? GROUP BY %s", hired, hired), since)
	if err != nil {
		return entity.Trends{}, errors.Wrap(err, "employee trend")
	}

	salaryMonth := r.secondary.Dialect.Left("SalaryMonth", 7)
	salaries, err := r.series(ctx, r.secondary,
		fmt.Sprintf("SELECT %s, COALESCE(SUM(NetSalary), 0) FROM salaries WHERE SalaryMonth >= ? GROUP BY %s", salaryMonth, salaryMonth), since)
	if err != nil {
		return entity.Trends{}, errors.Wrap(err, "salary trend")
	}

	attendanceMonth := r.secondary.Dialect.Left("AttendanceMonth", 7)
	workdays, err := r.series(ctx, r.secondary,
		fmt.Sprintf("SELECT %s, COALESCE(SUM(WorkDays), 0) FROM attendance WHERE AttendanceMonth >= ? GROUP BY %s", attendanceMonth, attendanceMonth), since)
	if err != nil {
		return entity.Trends{}, errors.Wrap(err, "workdays trend")
	}

	return entity.Trends{
		Months:        months,
		EmployeeTrend: fill(window, employees),
		SalaryTrend:   fill(window, salaries),
		WorkdaysTrend: fill(window, workdays),
	}, nil
}

// DebugData samples the ten newest months of salaries and attendance.
func (r Repository) DebugData(ctx context.Context) (entity.DebugData, error) {
	top, tail := r.secondary.Dialect.TopN(10)

	salaries, err := r.secondary.FetchRows(ctx,
		"SELECT "+top+"SalaryMonth AS salary_month, SUM(NetSalary) AS total FROM salaries GROUP BY SalaryMonth ORDER BY SalaryMonth DESC"+tail)
	if err != nil {
		return entity.DebugData{}, errors.Wrap(err, "sampling salaries")
	}
	attendance, err := r.secondary.FetchRows(ctx,
		"SELECT "+top+"AttendanceMonth AS attendance_month, SUM(WorkDays) AS total FROM attendance GROUP BY AttendanceMonth ORDER BY AttendanceMonth DESC"+tail)
	if err != nil {
		return entity.DebugData{}, errors.Wrap(err, "sampling attendance")
	}

	return entity.DebugData{
		Vendor:            string(r.secondary.Dialect.Vendor()),
		SalarySamples:     salaries,
		AttendanceSamples: attendance,
	}, nil
}

func (r Repository) monthSalary(ctx context.Context, m string) (float64, error) {
	v, err := r.secondary.FetchFloat(ctx, "SELECT COALESCE(SUM(NetSalary), 0) FROM salaries WHERE SalaryMonth = ?", m)
	return v, errors.Wrapf(err, "summing salaries of %s", m)
}

func (r Repository) monthWorkdays(ctx context.Context, m string) (int64, error) {
	v, err := r.secondary.FetchInt(ctx, "SELECT COALESCE(SUM(WorkDays), 0) FROM attendance WHERE AttendanceMonth = ?", m)
	return v, errors.Wrapf(err, "summing work days of %s", m)
}

// series reads (YYYY-MM, value) pairs.
func (r Repository) series(ctx context.Context, db *sqldb.Database, query string, args ...interface{}) (map[string]float64, error) {
	values := map[string]float64{}
	err := db.Each(ctx, func(rows *sql.Rows) error {
		var (
			key sql.NullString
			v   float64
		)
		if err := rows.Scan(&key, &v); err != nil {
			return err
		}
		if key.Valid {
			values[key.String] += v
		}
		return nil
	}, query, args...)

	return values, err
}

func fill(window []string, values map[string]float64) []entity.TrendPoint {
	points := make([]entity.TrendPoint, len(window))
	for i, m := range window {
		points[i] = entity.TrendPoint{Month: m, Value: values[m]}
	}
	return points
}
