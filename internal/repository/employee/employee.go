package employee

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/dualwrite"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/repository"
)

const (
	table    = "employees"
	idColumn = "EmployeeID"

	defaultPageSize = 10
)

const selectEmployee = `
	SELECT
		e.EmployeeID,
		e.FullName,
		e.DateOfBirth,
		e.Gender,
		e.PhoneNumber,
		e.Email,
		e.HireDate,
		e.DepartmentID,
		d.DepartmentName,
		e.PositionID,
		p.PositionName,
		e.Status
	FROM employees e
	LEFT JOIN departments d ON d.DepartmentID = e.DepartmentID
	LEFT JOIN positions p ON p.PositionID = e.PositionID`

// Repository reads employees from the primary and writes them to both
// backends; the secondary keeps a subset of the columns.
type Repository struct {
	*sqldb.Database
	writer       dualwrite.DualWriter
	rules        cascade.Rules
	activeStatus string
	now          func() time.Time
}

func NewRepository(primary *sqldb.Database, writer dualwrite.DualWriter, rules cascade.Rules, activeStatus string) *Repository {
	return &Repository{
		Database:     primary,
		writer:       writer,
		rules:        rules,
		activeStatus: activeStatus,
		now:          time.Now,
	}
}

// GetList returns one page of the employees matching filter. Page 1 of 10
// rows is the default.
func (r Repository) GetList(ctx context.Context, filter Filter) (entity.EmployeePage, error) {
	where := filterWhere(filter)
	page := repository.NewPage(filter.Page, filter.Size, defaultPageSize)

	query := selectEmployee + where.String() + " ORDER BY e.EmployeeID " + r.Dialect.Paginate(page.Offset(), page.Size)

	list, err := r.fetch(ctx, query, where.Args()...)
	if err != nil {
		return entity.EmployeePage{}, errors.Wrap(err, "selecting employees")
	}

	total, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM employees e"+where.String(), where.Args()...)
	if err != nil {
		return entity.EmployeePage{}, errors.Wrap(err, "counting employees")
	}

	return entity.EmployeePage{
		TotalRecords: int(total),
		Page:         page.Number,
		Size:         page.Size,
		Employees:    list,
	}, nil
}

// All returns every employee matching filter, ignoring its page.
func (r Repository) All(ctx context.Context, filter Filter) ([]entity.Employee, error) {
	where := filterWhere(filter)

	list, err := r.fetch(ctx, selectEmployee+where.String()+" ORDER BY e.EmployeeID", where.Args()...)
	return list, errors.Wrap(err, "selecting employees")
}

// GetDetailById returns nil when the employee does not exist.
func (r Repository) GetDetailById(ctx context.Context, id int64) (*entity.Employee, error) {
	list, err := r.fetch(ctx, selectEmployee+" WHERE e.EmployeeID = ?", id)
	if err != nil {
		return nil, errors.Wrap(err, "selecting employee detail")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// Create inserts the employee on the primary and its mirror row with the
// same id on the secondary. HireDate defaults to today and Status to the
// active status.
func (r Repository) Create(ctx context.Context, request CreateRequest) (*entity.Employee, error) {
	name := strings.TrimSpace(request.FullName)
	if name == "" {
		return nil, repository.BadRequest(errors.New("FullName is required"))
	}

	hire := request.HireDate
	if hire == nil {
		y, m, d := r.now().Date()
		hire = &date.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	}
	status := r.activeStatus
	if request.Status != nil && strings.TrimSpace(*request.Status) != "" {
		status = strings.TrimSpace(*request.Status)
	}
	dept := request.DepartmentID.Ptr()
	pos := request.PositionID.Ptr()

	var id int64
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "create employee",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			var err error
			id, err = sqldb.InsertID(ctx, tx, tx.Dialect, table, idColumn,
				[]string{"FullName", "DateOfBirth", "Gender", "PhoneNumber", "Email", "HireDate", "DepartmentID", "PositionID", "Status"},
				name, entity.DateArg(request.DateOfBirth), request.Gender, request.PhoneNumber, request.Email,
				entity.DateArg(hire), dept, pos, status)
			return errors.Wrap(err, "creating employee")
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			return dualwrite.InsertMirror(ctx, tx, table, idColumn, id,
				[]string{"FullName", "HireDate", "DepartmentID", "PositionID", "Status"},
				name, entity.DateArg(hire), dept, pos, status)
		},
	})
	if err != nil {
		return nil, err
	}

	return r.fetchWritten(ctx, id)
}

// Update changes the supplied fields on the primary and the mirrored ones on
// the secondary.
func (r Repository) Update(ctx context.Context, id int64, request UpdateRequest) (*entity.Employee, error) {
	var primary, secondary []dualwrite.Set
	both := func(column string, v interface{}) {
		primary = append(primary, dualwrite.Set{Column: column, Value: v})
		secondary = append(secondary, dualwrite.Set{Column: column, Value: v})
	}
	only := func(column string, v interface{}) {
		primary = append(primary, dualwrite.Set{Column: column, Value: v})
	}

	if request.FullName != nil {
		name := strings.TrimSpace(*request.FullName)
		if name == "" {
			return nil, repository.BadRequest(errors.New("FullName must not be empty"))
		}
		both("FullName", name)
	}
	if request.DateOfBirth != nil {
		only("DateOfBirth", entity.DateArg(request.DateOfBirth))
	}
	if request.Gender != nil {
		only("Gender", *request.Gender)
	}
	if request.PhoneNumber != nil {
		only("PhoneNumber", *request.PhoneNumber)
	}
	if request.Email != nil {
		only("Email", *request.Email)
	}
	if request.HireDate != nil {
		both("HireDate", entity.DateArg(request.HireDate))
	}
	if request.DepartmentID.Set {
		both("DepartmentID", request.DepartmentID.Value())
	}
	if request.PositionID.Set {
		both("PositionID", request.PositionID.Value())
	}
	if request.Status != nil {
		both("Status", *request.Status)
	}
	if len(primary) == 0 {
		return nil, repository.BadRequest(errors.New("at least one field is required"))
	}

	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "update employee",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			n, err := dualwrite.UpdateRow(ctx, tx, table, idColumn, id, primary...)
			if err != nil {
				return err
			}
			if n == 0 {
				return repository.NotFound("Employee", id)
			}
			return nil
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			_, err := dualwrite.UpdateRow(ctx, tx, table, idColumn, id, secondary...)
			return err
		},
	})
	if err != nil {
		return nil, err
	}

	return r.fetchWritten(ctx, id)
}

// Delete removes the employee's dividends, salaries and attendance, then
// the employee, on both backends.
func (r Repository) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	step := func(required bool) dualwrite.Step {
		return func(ctx context.Context, tx dualwrite.Tx) error {
			if err := r.rules.Apply(ctx, tx.Tx, table, tx.Backend, id); err != nil {
				return err
			}
			n, err := dualwrite.DeleteRow(ctx, tx, table, idColumn, id)
			if err != nil {
				return err
			}
			if required && n == 0 {
				return repository.NotFound("Employee", id)
			}
			return nil
		}
	}

	err := r.writer.Write(ctx, dualwrite.Op{
		Name:      "delete employee",
		Primary:   step(true),
		Secondary: step(false),
	})
	if err != nil {
		return DeleteResponse{}, err
	}

	return DeleteResponse{
		EmployeeID: id,
		Message:    fmt.Sprintf("Employee with ID %d deleted successfully", id),
	}, nil
}

func (r Repository) fetchWritten(ctx context.Context, id int64) (*entity.Employee, error) {
	e, err := r.GetDetailById(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.Errorf("employee %d missing after write", id)
	}
	return e, nil
}

func (r Repository) fetch(ctx context.Context, query string, args ...interface{}) ([]entity.Employee, error) {
	list := []entity.Employee{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		e, err := scan(rows)
		if err != nil {
			return err
		}
		list = append(list, e)
		return nil
	}, query, args...)

	return list, err
}

func scan(rows *sql.Rows) (entity.Employee, error) {
	var (
		e                                       entity.Employee
		dob, hire                               sql.NullTime
		gender, phone, email, dept, pos, status sql.NullString
		deptID, posID                           sql.NullInt64
	)
	if err := rows.Scan(
		&e.EmployeeID,
		&e.FullName,
		&dob,
		&gender,
		&phone,
		&email,
		&hire,
		&deptID,
		&dept,
		&posID,
		&pos,
		&status,
	); err != nil {
		return entity.Employee{}, err
	}

	e.DateOfBirth = entity.DateOf(dob)
	e.Gender = entity.StringOf(gender)
	e.PhoneNumber = entity.StringOf(phone)
	e.Email = entity.StringOf(email)
	e.HireDate = entity.DateOf(hire)
	e.DepartmentID = entity.Int64Of(deptID)
	e.DepartmentName = entity.StringOf(dept)
	e.PositionID = entity.Int64Of(posID)
	e.PositionName = entity.StringOf(pos)
	e.Status = entity.StringOf(status)

	return e, nil
}

func filterWhere(filter Filter) repository.Where {
	var where repository.Where
	if filter.DepartmentID != nil {
		where.Add("e.DepartmentID = ?", *filter.DepartmentID)
	}
	if filter.PositionID != nil {
		where.Add("e.PositionID = ?", *filter.PositionID)
	}
	if filter.Status != nil && strings.TrimSpace(*filter.Status) != "" {
		where.Add("e.Status = ?", strings.TrimSpace(*filter.Status))
	}
	if filter.Keyword != nil && strings.TrimSpace(*filter.Keyword) != "" {
		kw := repository.Like(*filter.Keyword)
		where.Add("(e.FullName LIKE ? OR e.Email LIKE ? OR e.PhoneNumber LIKE ?)", kw, kw, kw)
	}
	return where
}
