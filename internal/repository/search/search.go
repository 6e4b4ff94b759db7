// Package search runs one keyword over employees, departments, positions,
// salaries and attendance.
package search

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/repository"
)

// Limit caps the rows returned per table.
const Limit = 10

type Repository struct {
	primary   *sqldb.Database
	secondary *sqldb.Database
}

func NewRepository(primary, secondary *sqldb.Database) *Repository {
	return &Repository{primary: primary, secondary: secondary}
}

type query struct {
	db   *sqldb.Database
	dst  *[]sqldb.Row
	from string
	args int
}

// All matches keyword against every table. Salaries and attendance match on
// the employee name. Columns are aliased in lower snake case so row keys are
// the same on every vendor.
func (r Repository) All(ctx context.Context, keyword string) (entity.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return entity.SearchResult{}, repository.BadRequest(errors.New("keyword is required"))
	}
	like := repository.Like(keyword)

	var result entity.SearchResult
	queries := []query{
		{r.primary, &result.Employees, `e.EmployeeID AS employee_id, e.FullName AS full_name, e.Email AS email,
			e.PhoneNumber AS phone_number, d.DepartmentName AS department_name, p.PositionName AS position_name
			FROM employees e
			LEFT JOIN departments d ON d.DepartmentID = e.DepartmentID
			LEFT JOIN positions p ON p.PositionID = e.PositionID
			WHERE e.FullName LIKE ? OR e.Email LIKE ? OR e.PhoneNumber LIKE ?
			ORDER BY e.EmployeeID`, 3},
		{r.primary, &result.Departments, `DepartmentID AS department_id, DepartmentName AS department_name
			FROM departments
			WHERE DepartmentName LIKE ?
			ORDER BY DepartmentID`, 1},
		{r.primary, &result.Positions, `PositionID AS position_id, PositionName AS position_name
			FROM positions
			WHERE PositionName LIKE ?
			ORDER BY PositionID`, 1},
		{r.secondary, &result.Salaries, `s.SalaryID AS salary_id, s.SalaryMonth AS salary_month, s.NetSalary AS net_salary, e.FullName AS full_name
			FROM salaries s
			JOIN employees e ON e.EmployeeID = s.EmployeeID
			WHERE e.FullName LIKE ?
			ORDER BY s.SalaryMonth DESC`, 1},
		{r.secondary, &result.Attendance, `a.AttendanceID AS attendance_id, a.AttendanceMonth AS attendance_month, a.WorkDays AS work_days, e.FullName AS full_name
			FROM attendance a
			JOIN employees e ON e.EmployeeID = a.EmployeeID
			WHERE e.FullName LIKE ?
			ORDER BY a.AttendanceMonth DESC`, 1},
	}

	for _, q := range queries {
		top, limit := q.db.Dialect.TopN(Limit)
		args := make([]interface{}, q.args)
		for i := range args {
			args[i] = like
		}

		rows, err := q.db.FetchRows(ctx, "SELECT "+top+q.from+limit, args...)
		if err != nil {
			return entity.SearchResult{}, errors.Wrap(err, "searching")
		}
		*q.dst = rows
	}

	return result, nil
}
