package dividend

import (
	"context"
	"database/sql"
	"fmt"
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
	table    = "dividends"
	idColumn = "DividendID"

	selectDividend = "SELECT DividendID, EmployeeID, DividendAmount, DividendDate, CreatedAt FROM dividends"
)

var columns = []string{"EmployeeID", "DividendAmount", "DividendDate"}

// Repository reads dividends from the primary and writes them to both
// backends.
type Repository struct {
	*sqldb.Database
	writer dualwrite.DualWriter
	rules  cascade.Rules
	now    func() time.Time
}

func NewRepository(primary *sqldb.Database, writer dualwrite.DualWriter, rules cascade.Rules) *Repository {
	return &Repository{
		Database: primary,
		writer:   writer,
		rules:    rules,
		now:      time.Now,
	}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Dividend, int, error) {
	var where repository.Where
	if filter.EmployeeID != nil {
		where.Add("EmployeeID = ?", *filter.EmployeeID)
	}

	query := selectDividend + where.String() + " ORDER BY DividendDate DESC, DividendID"
	if page := repository.OptionalPage(filter.Page, filter.Size, 20); page != nil {
		query += " " + r.Dialect.Paginate(page.Offset(), page.Size)
	}

	list, err := r.fetch(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "selecting dividends")
	}

	count, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM dividends"+where.String(), where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting dividends")
	}

	return list, int(count), nil
}

// GetDetailById returns nil when the dividend does not exist.
func (r Repository) GetDetailById(ctx context.Context, id int64) (*entity.Dividend, error) {
	list, err := r.fetch(ctx, selectDividend+" WHERE DividendID = ?", id)
	if err != nil {
		return nil, errors.Wrap(err, "selecting dividend detail")
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// Create records a dividend on both backends. The amount defaults to 0 and
// the date to today.
func (r Repository) Create(ctx context.Context, request CreateRequest) (WriteResponse, error) {
	paid := request.DividendDate
	if paid == nil {
		paid = r.today()
	}
	args := []interface{}{request.EmployeeID.Ptr(), request.DividendAmount.Or(0), entity.DateArg(paid)}

	var id int64
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "create dividend",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			var err error
			id, err = sqldb.InsertID(ctx, tx, tx.Dialect, table, idColumn, columns, args...)
			return errors.Wrap(err, "creating dividend")
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			return dualwrite.InsertMirror(ctx, tx, table, idColumn, id, columns, args...)
		},
	})
	if err != nil {
		return WriteResponse{}, err
	}

	d, err := r.fetchWritten(ctx, id)
	if err != nil {
		return WriteResponse{}, err
	}
	return WriteResponse{Dividend: *d, Message: "Dividend record created"}, nil
}

// Update rewrites the dividend on both backends, keeping the stored value of
// every field the request leaves out.
func (r Repository) Update(ctx context.Context, id int64, request UpdateRequest) (WriteResponse, error) {
	current, err := r.GetDetailById(ctx, id)
	if err != nil {
		return WriteResponse{}, err
	}
	if current == nil {
		return WriteResponse{}, repository.NotFound("Dividend", id)
	}

	employee := current.EmployeeID
	if request.EmployeeID != nil {
		employee = request.EmployeeID.Ptr()
	}
	paid := current.DividendDate
	if request.DividendDate != nil {
		paid = request.DividendDate
	}
	sets := []dualwrite.Set{
		{Column: "EmployeeID", Value: employee},
		{Column: "DividendAmount", Value: request.DividendAmount.Or(current.DividendAmount)},
		{Column: "DividendDate", Value: entity.DateArg(paid)},
	}

	step := func(ctx context.Context, tx dualwrite.Tx) error {
		_, err := dualwrite.UpdateRow(ctx, tx, table, idColumn, id, sets...)
		return err
	}
	if err := r.writer.Write(ctx, dualwrite.Op{Name: "update dividend", Primary: step, Secondary: step}); err != nil {
		return WriteResponse{}, err
	}

	d, err := r.fetchWritten(ctx, id)
	if err != nil {
		return WriteResponse{}, err
	}
	return WriteResponse{Dividend: *d, Message: "Dividend record updated successfully"}, nil
}

// Delete removes the dividend from both backends and returns the row it
// removed.
func (r Repository) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	current, err := r.GetDetailById(ctx, id)
	if err != nil {
		return DeleteResponse{}, err
	}
	if current == nil {
		return DeleteResponse{}, repository.NotFound("Dividend", id)
	}

	step := func(ctx context.Context, tx dualwrite.Tx) error {
		if err := r.rules.Apply(ctx, tx.Tx, table, tx.Backend, id); err != nil {
			return err
		}
		_, err := dualwrite.DeleteRow(ctx, tx, table, idColumn, id)
		return err
	}
	if err := r.writer.Write(ctx, dualwrite.Op{Name: "delete dividend", Primary: step, Secondary: step}); err != nil {
		return DeleteResponse{}, err
	}

	return DeleteResponse{
		Message:       fmt.Sprintf("Dividend record with ID %d deleted successfully", id),
		DeletedRecord: *current,
	}, nil
}

func (r Repository) today() *date.Date {
	y, m, d := r.now().Date()
	return &date.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (r Repository) fetchWritten(ctx context.Context, id int64) (*entity.Dividend, error) {
	d, err := r.GetDetailById(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.Errorf("dividend %d missing after write", id)
	}
	return d, nil
}

func (r Repository) fetch(ctx context.Context, query string, args ...interface{}) ([]entity.Dividend, error) {
	list := []entity.Dividend{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var (
			d             entity.Dividend
			employee      sql.NullInt64
			paid, created sql.NullTime
		)
		if err := rows.Scan(&d.DividendID, &employee, &d.DividendAmount, &paid, &created); err != nil {
			return err
		}
		d.EmployeeID = entity.Int64Of(employee)
		d.DividendDate = entity.DateOf(paid)
		d.CreatedAt = entity.TimeOf(created)
		list = append(list, d)
		return nil
	}, query, args...)

	return list, err
}
