package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/dialect"
	"hrpayroll/backend/internal/pkg/month"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/pkg/stats"
	"hrpayroll/backend/internal/repository"
)

// Repository keeps timesheets on the secondary backend only.
type Repository struct {
	*sqldb.Database
	selectAttendance string
}

func NewRepository(secondary *sqldb.Database) *Repository {
	return &Repository{
		Database: secondary,
		selectAttendance: `
	SELECT
		a.AttendanceID,
		a.EmployeeID,
		e.FullName,
		a.AttendanceMonth,
		a.WorkDays,
		a.AbsentDays,
		a.LeaveDays,
		a.CreatedAt,
		` + secondary.Dialect.MonthDays("a.AttendanceMonth") + ` AS TotalDaysInMonth
	FROM attendance a
	LEFT JOIN employees e ON e.EmployeeID = a.EmployeeID`,
	}
}

// GetList returns the timesheets matching filter, newest month first, and
// their total count.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Attendance, int, error) {
	where, err := filterWhere(filter)
	if err != nil {
		return nil, 0, err
	}

	query := r.selectAttendance + where.String() + " ORDER BY a.AttendanceMonth DESC, a.EmployeeID"
	if page := repository.OptionalPage(filter.Page, filter.Size, 20); page != nil {
		query += " " + r.Dialect.Paginate(page.Offset(), page.Size)
	}

	list, err := r.fetch(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "selecting attendance")
	}

	count, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM attendance a"+where.String(), where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting attendance")
	}

	return list, int(count), nil
}

// GetDetailById returns nil when the timesheet does not exist.
func (r Repository) GetDetailById(ctx context.Context, id int64) (*entity.Attendance, error) {
	list, err := r.fetch(ctx, r.selectAttendance+" WHERE a.AttendanceID = ?", id)
	if err != nil {
		return nil, errors.Wrap(err, "selecting attendance detail")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// Create stores a timesheet. Missing day counts are 0.
func (r Repository) Create(ctx context.Context, request CreateRequest) (WriteResponse, error) {
	if request.EmployeeID == nil || request.AttendanceMonth == nil || strings.TrimSpace(*request.AttendanceMonth) == "" {
		return WriteResponse{}, repository.BadRequest(errors.New("EmployeeID and AttendanceMonth are required"))
	}
	m, err := month.Normalize(strings.TrimSpace(*request.AttendanceMonth))
	if err != nil {
		return WriteResponse{}, repository.BadRequest(err)
	}

	employeeID := request.EmployeeID.Or(0)
	id, err := r.InsertID(ctx, "attendance", "AttendanceID",
		[]string{"EmployeeID", "AttendanceMonth", "WorkDays", "AbsentDays", "LeaveDays"},
		employeeID, m, request.WorkDays.Or(0), request.AbsentDays.Or(0), request.LeaveDays.Or(0))
	if err != nil {
		return WriteResponse{}, errors.Wrap(err, "creating attendance")
	}

	var a *entity.Attendance
	if r.Dialect.Vendor() == dialect.MySQL {
		a, err = r.newest(ctx, employeeID, m)
	} else {
		a, err = r.GetDetailById(ctx, id)
	}
	if err != nil {
		return WriteResponse{}, err
	}
	if a == nil {
		return WriteResponse{}, errors.Errorf("attendance %d missing after insert", id)
	}

	return WriteResponse{Attendance: *a, Message: "Timesheet created successfully"}, nil
}

// Update changes the supplied day counts.
func (r Repository) Update(ctx context.Context, id int64, request UpdateRequest) (WriteResponse, error) {
	if request.WorkDays == nil && request.AbsentDays == nil && request.LeaveDays == nil {
		return WriteResponse{}, repository.BadRequest(errors.New("at least one of WorkDays, AbsentDays or LeaveDays is required"))
	}

	current, err := r.GetDetailById(ctx, id)
	if err != nil {
		return WriteResponse{}, err
	}
	if current == nil {
		return WriteResponse{}, repository.NotFound("Attendance", id)
	}

	_, err = r.Exec(ctx, "UPDATE attendance SET WorkDays = ?, AbsentDays = ?, LeaveDays = ? WHERE AttendanceID = ?",
		request.WorkDays.Or(current.WorkDays),
		request.AbsentDays.Or(current.AbsentDays),
		request.LeaveDays.Or(current.LeaveDays),
		id)
	if err != nil {
		return WriteResponse{}, errors.Wrap(err, "updating attendance")
	}

	a, err := r.GetDetailById(ctx, id)
	if err != nil {
		return WriteResponse{}, err
	}
	if a == nil {
		return WriteResponse{}, repository.NotFound("Attendance", id)
	}

	return WriteResponse{Attendance: *a, Message: "Timesheet updated"}, nil
}

// Delete removes the timesheet and returns the row it removed.
func (r Repository) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	current, err := r.GetDetailById(ctx, id)
	if err != nil {
		return DeleteResponse{}, err
	}
	if current == nil {
		return DeleteResponse{}, repository.NotFound("Attendance", id)
	}

	if _, err := r.Exec(ctx, "DELETE FROM attendance WHERE AttendanceID = ?", id); err != nil {
		return DeleteResponse{}, errors.Wrap(err, "deleting attendance")
	}

	return DeleteResponse{
		Message:       fmt.Sprintf("Attendance record with ID %d deleted successfully", id),
		DeletedRecord: *current,
	}, nil
}

// Statistics sums the day counts of one month, one year, or every
// timesheet when neither is given.
func (r Repository) Statistics(ctx context.Context, monthParam *string, year *int) (entity.AttendanceStatistics, error) {
	var where repository.Where
	switch {
	case monthParam != nil && strings.TrimSpace(*monthParam) != "":
		m, err := month.Normalize(strings.TrimSpace(*monthParam))
		if err != nil {
			return entity.AttendanceStatistics{}, repository.BadRequest(err)
		}
		where.Add("AttendanceMonth = ?", m)
	case year != nil:
		where.Add("AttendanceMonth LIKE ?", month.YearPattern(*year))
	}

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(WorkDays), 0),
			COALESCE(SUM(AbsentDays), 0),
			COALESCE(SUM(LeaveDays), 0)
		FROM attendance` + where.String()

	var s entity.AttendanceStatistics
	err := r.Each(ctx, func(rows *sql.Rows) error {
		return rows.Scan(&s.TotalRecords, &s.TotalWorkDays, &s.TotalAbsentDays, &s.TotalLeaveDays)
	}, query, where.Args()...)
	if err != nil {
		return entity.AttendanceStatistics{}, errors.Wrap(err, "summing attendance")
	}

	s.AttendanceRate = stats.AttendanceRate(s.TotalWorkDays, s.TotalAbsentDays)
	return s, nil
}

func (r Repository) newest(ctx context.Context, employeeID int64, m string) (*entity.Attendance, error) {
	top, limit := r.Dialect.TopN(1)
	query := strings.Replace(r.selectAttendance, "SELECT", "SELECT "+top, 1) +
		" WHERE a.EmployeeID = ? AND a.AttendanceMonth = ? ORDER BY a.AttendanceID DESC" + limit

	list, err := r.fetch(ctx, query, employeeID, m)
	if err != nil {
		return nil, errors.Wrap(err, "selecting newest attendance")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r Repository) fetch(ctx context.Context, query string, args ...interface{}) ([]entity.Attendance, error) {
	list := []entity.Attendance{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var (
			a       entity.Attendance
			name    sql.NullString
			created sql.NullTime
			days    sql.NullInt64
		)
		if err := rows.Scan(&a.AttendanceID, &a.EmployeeID, &name, &a.AttendanceMonth,
			&a.WorkDays, &a.AbsentDays, &a.LeaveDays, &created, &days); err != nil {
			return err
		}
		a.FullName = entity.StringOf(name)
		a.CreatedAt = entity.TimeOf(created)
		a.TotalDaysInMonth = int(days.Int64)
		if a.TotalDaysInMonth <= 0 {
			a.TotalDaysInMonth = month.DaysIn(a.AttendanceMonth)
		}
		list = append(list, a)
		return nil
	}, query, args...)

	return list, err
}

func filterWhere(filter Filter) (repository.Where, error) {
	var where repository.Where
	if filter.EmployeeID != nil {
		where.Add("a.EmployeeID = ?", *filter.EmployeeID)
	}
	if filter.Month != nil && strings.TrimSpace(*filter.Month) != "" {
		m, err := month.Normalize(strings.TrimSpace(*filter.Month))
		if err != nil {
			return where, repository.BadRequest(err)
		}
		where.Add("a.AttendanceMonth = ?", m)
	}
	if filter.Year != nil {
		where.Add("a.AttendanceMonth LIKE ?", month.YearPattern(*filter.Year))
	}
	return where, nil
}
