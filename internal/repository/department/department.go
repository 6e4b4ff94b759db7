package department

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/dualwrite"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/pkg/stats"
	"hrpayroll/backend/internal/repository"
)

const (
	table    = "departments"
	idColumn = "DepartmentID"
)

// Repository reads departments from the primary and writes them to both
// backends.
type Repository struct {
	*sqldb.Database
	writer       dualwrite.DualWriter
	rules        cascade.Rules
	activeStatus string
}

func NewRepository(primary *sqldb.Database, writer dualwrite.DualWriter, rules cascade.Rules, activeStatus string) *Repository {
	return &Repository{
		Database:     primary,
		writer:       writer,
		rules:        rules,
		activeStatus: activeStatus,
	}
}

// GetList returns the departments matching filter and their total count.
// Without a page every match is returned.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Department, int, error) {
	var where repository.Where
	if filter.Keyword != nil && strings.TrimSpace(*filter.Keyword) != "" {
		where.Add("DepartmentName LIKE ?", repository.Like(*filter.Keyword))
	}

	query := "SELECT DepartmentID, DepartmentName FROM departments" + where.String() + " ORDER BY DepartmentID"
	if page := repository.OptionalPage(filter.Page, filter.Size, 20); page != nil {
		query += " " + r.Dialect.Paginate(page.Offset(), page.Size)
	}

	list := []entity.Department{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var d entity.Department
		if err := rows.Scan(&d.DepartmentID, &d.DepartmentName); err != nil {
			return err
		}
		list = append(list, d)
		return nil
	}, query, where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "selecting departments")
	}

	count, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM departments"+where.String(), where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting departments")
	}

	return list, int(count), nil
}

// GetDetailById returns nil when the department does not exist.
func (r Repository) GetDetailById(ctx context.Context, id int64) (*entity.Department, error) {
	var found *entity.Department
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var d entity.Department
		if err := rows.Scan(&d.DepartmentID, &d.DepartmentName); err != nil {
			return err
		}
		found = &d
		return nil
	}, "SELECT DepartmentID, DepartmentName FROM departments WHERE DepartmentID = ?", id)
	if err != nil {
		return nil, errors.Wrap(err, "selecting department detail")
	}

	return found, nil
}

// Create inserts the department on the primary, mirrors it with the same
// id on the secondary and returns the stored row.
func (r Repository) Create(ctx context.Context, request CreateRequest) (*entity.Department, error) {
	name := strings.TrimSpace(request.DepartmentName)
	if name == "" {
		return nil, repository.BadRequest(errors.New("DepartmentName is required"))
	}

	var id int64
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "create department",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			var err error
			id, err = sqldb.InsertID(ctx, tx, tx.Dialect, table, idColumn, []string{"DepartmentName"}, name)
			return errors.Wrap(err, "creating department")
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			return dualwrite.InsertMirror(ctx, tx, table, idColumn, id, []string{"DepartmentName"}, name)
		},
	})
	if err != nil {
		return nil, err
	}

	return r.fetchWritten(ctx, id)
}

// Update renames the department on both backends.
func (r Repository) Update(ctx context.Context, id int64, request UpdateRequest) (*entity.Department, error) {
	name := strings.TrimSpace(request.DepartmentName)
	if name == "" {
		return nil, repository.BadRequest(errors.New("DepartmentName is required"))
	}

	set := dualwrite.Set{Column: "DepartmentName", Value: name}
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "update department",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			n, err := dualwrite.UpdateRow(ctx, tx, table, idColumn, id, set)
			if err != nil {
				return err
			}
			if n == 0 {
				return repository.NotFound("Department", id)
			}
			return nil
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			_, err := dualwrite.UpdateRow(ctx, tx, table, idColumn, id, set)
			return err
		},
	})
	if err != nil {
		return nil, err
	}

	return r.fetchWritten(ctx, id)
}

// Delete detaches the department's employees and deletes it on both
// backends.
func (r Repository) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "delete department",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			if err := r.rules.Apply(ctx, tx.Tx, table, tx.Backend, id); err != nil {
				return err
			}
			n, err := dualwrite.DeleteRow(ctx, tx, table, idColumn, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return repository.NotFound("Department", id)
			}
			return nil
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			if err := r.rules.Apply(ctx, tx.Tx, table, tx.Backend, id); err != nil {
				return err
			}
			_, err := dualwrite.DeleteRow(ctx, tx, table, idColumn, id)
			return err
		},
	})
	if err != nil {
		return DeleteResponse{}, err
	}

	return DeleteResponse{
		DepartmentID: id,
		Message:      fmt.Sprintf("Department with ID %d deleted successfully", id),
	}, nil
}

// Statistics returns the head count of every department, largest first.
func (r Repository) Statistics(ctx context.Context) ([]entity.DepartmentStatistic, error) {
	total, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM employees")
	if err != nil {
		return nil, errors.Wrap(err, "counting employees")
	}

	query := `
		SELECT
			d.DepartmentID,
			d.DepartmentName,
			COUNT(e.EmployeeID) AS EmployeeCount,
			SUM(CASE WHEN e.Status = ? THEN 1 ELSE 0 END) AS ActiveEmployees
		FROM departments d
		LEFT JOIN employees e ON e.DepartmentID = d.DepartmentID
		GROUP BY d.DepartmentID, d.DepartmentName
		ORDER BY EmployeeCount DESC, d.DepartmentID`

	list := []entity.DepartmentStatistic{}
	err = r.Each(ctx, func(rows *sql.Rows) error {
		var (
			s      entity.DepartmentStatistic
			active sql.NullInt64
		)
		if err := rows.Scan(&s.DepartmentID, &s.DepartmentName, &s.EmployeeCount, &active); err != nil {
			return err
		}
		s.ActiveEmployees = active.Int64
		s.Percentage = stats.Round(stats.Percent(float64(s.EmployeeCount), float64(total)))
		list = append(list, s)
		return nil
	}, query, r.activeStatus)
	if err != nil {
		return nil, errors.Wrap(err, "selecting department statistics")
	}

	return list, nil
}

func (r Repository) fetchWritten(ctx context.Context, id int64) (*entity.Department, error) {
	d, err := r.GetDetailById(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.Errorf("department %d missing after write", id)
	}
	return d, nil
}
