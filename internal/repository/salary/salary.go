package salary

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/dialect"
	"hrpayroll/backend/internal/pkg/month"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/repository"
)

const selectSalary = `
	SELECT
		s.SalaryID,
		s.EmployeeID,
		e.FullName,
		s.SalaryMonth,
		s.BaseSalary,
		s.Bonus,
		s.Deductions,
		s.NetSalary,
		s.CreatedAt
	FROM salaries s
	LEFT JOIN employees e ON e.EmployeeID = s.EmployeeID`

// Repository keeps salaries on the secondary backend only.
type Repository struct {
	*sqldb.Database
}

func NewRepository(secondary *sqldb.Database) *Repository {
	return &Repository{Database: secondary}
}

// GetList returns the salaries matching filter, newest month first, and
// their total count.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Salary, int, error) {
	where, err := filterWhere(filter)
	if err != nil {
		return nil, 0, err
	}

	query := selectSalary + where.String() + " ORDER BY s.SalaryMonth DESC, s.EmployeeID"
	if page := repository.OptionalPage(filter.Page, filter.Size, 20); page != nil {
		query += " " + r.Dialect.Paginate(page.Offset(), page.Size)
	}

	list, err := r.fetch(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "selecting salaries")
	}

	count, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM salaries s"+where.String(), where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting salaries")
	}

	return list, int(count), nil
}

// GetDetailById returns nil when the salary does not exist.
func (r Repository) GetDetailById(ctx context.Context, id int64) (*entity.Salary, error) {
	list, err := r.fetch(ctx, selectSalary+" WHERE s.SalaryID = ?", id)
	if err != nil {
		return nil, errors.Wrap(err, "selecting salary detail")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// My returns one employee's salaries, newest month first.
func (r Repository) My(ctx context.Context, employeeID int64) ([]entity.Salary, error) {
	list, err := r.fetch(ctx, selectSalary+" WHERE s.EmployeeID = ? ORDER BY s.SalaryMonth DESC", employeeID)
	return list, errors.Wrap(err, "selecting employee salaries")
}

// Generate stores one month of pay with NetSalary computed from the parts.
func (r Repository) Generate(ctx context.Context, request GenerateRequest) (*entity.Salary, error) {
	if request.EmployeeID == nil {
		return nil, repository.BadRequest(errors.New("EmployeeID is required"))
	}
	if strings.TrimSpace(request.SalaryMonth) == "" {
		return nil, repository.BadRequest(errors.New("SalaryMonth is required"))
	}
	m, err := month.Normalize(strings.TrimSpace(request.SalaryMonth))
	if err != nil {
		return nil, repository.BadRequest(err)
	}

	employeeID := request.EmployeeID.Or(0)
	base := request.BaseSalary.Or(0)
	bonus := request.Bonus.Or(0)
	deductions := request.Deductions.Or(0)

	id, err := r.InsertID(ctx, "salaries", "SalaryID",
		[]string{"EmployeeID", "SalaryMonth", "BaseSalary", "Bonus", "Deductions", "NetSalary"},
		employeeID, m, base, bonus, deductions, base+bonus-deductions)
	if err != nil {
		return nil, errors.Wrap(err, "generating salary")
	}

	var s *entity.Salary
	if r.Dialect.Vendor() == dialect.MySQL {
		s, err = r.newest(ctx, employeeID, m)
	} else {
		s, err = r.GetDetailById(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.Errorf("salary %d missing after insert", id)
	}
	return s, nil
}

// Update changes the bonus and deductions and recomputes NetSalary from the
// stored base salary.
func (r Repository) Update(ctx context.Context, id int64, request UpdateRequest) (*entity.Salary, error) {
	if request.Bonus == nil && request.Deductions == nil {
		return nil, repository.BadRequest(errors.New("Bonus or Deductions is required"))
	}

	current, err := r.GetDetailById(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, repository.NotFound("Salary", id)
	}

	bonus := request.Bonus.Or(current.Bonus)
	deductions := request.Deductions.Or(current.Deductions)

	_, err = r.Exec(ctx, "UPDATE salaries SET Bonus = ?, Deductions = ?, NetSalary = ? WHERE SalaryID = ?",
		bonus, deductions, current.BaseSalary+bonus-deductions, id)
	if err != nil {
		return nil, errors.Wrap(err, "updating salary")
	}

	return r.GetDetailById(ctx, id)
}

// Delete removes the salary and returns the row it removed.
func (r Repository) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	current, err := r.GetDetailById(ctx, id)
	if err != nil {
		return DeleteResponse{}, err
	}
	if current == nil {
		return DeleteResponse{}, repository.NotFound("Salary", id)
	}

	if _, err := r.Exec(ctx, "DELETE FROM salaries WHERE SalaryID = ?", id); err != nil {
		return DeleteResponse{}, errors.Wrap(err, "deleting salary")
	}

	return DeleteResponse{
		Message:       fmt.Sprintf("Salary record with ID %d deleted successfully", id),
		DeletedRecord: *current,
	}, nil
}

// Statistics sums the salaries of one month, or of one year broken down by
// month. One of the two is required.
func (r Repository) Statistics(ctx context.Context, monthParam *string, year *int) (entity.SalaryStatistics, error) {
	switch {
	case monthParam != nil && strings.TrimSpace(*monthParam) != "":
		m, err := month.Normalize(strings.TrimSpace(*monthParam))
		if err != nil {
			return entity.SalaryStatistics{}, repository.BadRequest(err)
		}
		y, _ := strconv.Atoi(m[:4])

		totals, err := r.totals(ctx, " WHERE SalaryMonth = ?", m)
		if err != nil {
			return entity.SalaryStatistics{}, err
		}
		return entity.SalaryStatistics{
			Year:            &y,
			Month:           &m,
			TotalRecords:    totals.TotalRecords,
			TotalBaseSalary: totals.TotalBaseSalary,
			TotalBonus:      totals.TotalBonus,
			TotalDeductions: totals.TotalDeductions,
			TotalAmount:     totals.TotalAmount,
		}, nil

	case year != nil:
		pattern := month.YearPattern(*year)
		totals, err := r.totals(ctx, " WHERE SalaryMonth LIKE ?", pattern)
		if err != nil {
			return entity.SalaryStatistics{}, err
		}
		monthly, err := r.monthly(ctx, pattern)
		if err != nil {
			return entity.SalaryStatistics{}, err
		}
		y := *year
		return entity.SalaryStatistics{
			Year:             &y,
			MonthlyData:      monthly,
			TotalRecords:     totals.TotalRecords,
			TotalBaseSalary:  totals.TotalBaseSalary,
			TotalBonus:       totals.TotalBonus,
			TotalDeductions:  totals.TotalDeductions,
			TotalAmount:      totals.TotalAmount,
			TotalGrossSalary: &totals.TotalGrossSalary,
		}, nil
	}

	return entity.SalaryStatistics{}, repository.BadRequest(errors.New("month or year is required"))
}

func (r Repository) totals(ctx context.Context, where string, args ...interface{}) (entity.SalaryTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(BaseSalary), 0),
			COALESCE(SUM(Bonus), 0),
			COALESCE(SUM(Deductions), 0),
			COALESCE(SUM(NetSalary), 0),
			COALESCE(SUM(BaseSalary + Bonus), 0)
		FROM salaries` + where

	var t entity.SalaryTotals
	err := r.Each(ctx, func(rows *sql.Rows) error {
		return rows.Scan(&t.TotalRecords, &t.TotalBaseSalary, &t.TotalBonus, &t.TotalDeductions, &t.TotalAmount, &t.TotalGrossSalary)
	}, query, args...)

	return t, errors.Wrap(err, "summing salaries")
}

func (r Repository) monthly(ctx context.Context, pattern string) ([]entity.SalaryMonthTotals, error) {
	query := `
		SELECT
			SalaryMonth,
			COUNT(DISTINCT EmployeeID),
			COALESCE(SUM(BaseSalary + Bonus), 0),
			COALESCE(SUM(NetSalary), 0),
			COALESCE(SUM(BaseSalary), 0),
			COALESCE(SUM(Bonus), 0),
			COALESCE(SUM(Deductions), 0)
		FROM salaries
		WHERE SalaryMonth LIKE ?
		GROUP BY SalaryMonth
		ORDER BY SalaryMonth`

	list := []entity.SalaryMonthTotals{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var m entity.SalaryMonthTotals
		if err := rows.Scan(&m.Month, &m.EmployeeCount, &m.TotalGrossSalary, &m.TotalNetSalary,
			&m.TotalBaseSalary, &m.TotalBonus, &m.TotalDeductions); err != nil {
			return err
		}
		list = append(list, m)
		return nil
	}, query, pattern)

	return list, errors.Wrap(err, "summing salaries by month")
}

// newest is the latest salary of an employee for a month. MySQL cannot
// return the inserted row, so it is read back this way.
func (r Repository) newest(ctx context.Context, employeeID int64, m string) (*entity.Salary, error) {
	top, limit := r.Dialect.TopN(1)
	query := strings.Replace(selectSalary, "SELECT", "SELECT "+top, 1) +
		" WHERE s.EmployeeID = ? AND s.SalaryMonth = ? ORDER BY s.SalaryID DESC" + limit

	list, err := r.fetch(ctx, query, employeeID, m)
	if err != nil {
		return nil, errors.Wrap(err, "selecting newest salary")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r Repository) fetch(ctx context.Context, query string, args ...interface{}) ([]entity.Salary, error) {
	list := []entity.Salary{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var (
			s       entity.Salary
			name    sql.NullString
			created sql.NullTime
		)
		if err := rows.Scan(&s.SalaryID, &s.EmployeeID, &name, &s.SalaryMonth, &s.BaseSalary,
			&s.Bonus, &s.Deductions, &s.NetSalary, &created); err != nil {
			return err
		}
		s.EmployeeName = entity.StringOf(name)
		s.CreatedAt = entity.TimeOf(created)
		list = append(list, s)
		return nil
	}, query, args...)

	return list, err
}

func filterWhere(filter Filter) (repository.Where, error) {
	var where repository.Where
	if filter.EmployeeID != nil {
		where.Add("s.EmployeeID = ?", *filter.EmployeeID)
	}
	if filter.Month != nil && strings.TrimSpace(*filter.Month) != "" {
		m, err := month.Normalize(strings.TrimSpace(*filter.Month))
		if err != nil {
			return where, repository.BadRequest(err)
		}
		where.Add("s.SalaryMonth = ?", m)
	}
	if filter.Year != nil {
		where.Add("s.SalaryMonth LIKE ?", month.YearPattern(*filter.Year))
	}
	return where, nil
}
