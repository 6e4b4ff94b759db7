package position

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
	table    = "positions"
	idColumn = "PositionID"
)

// Repository reads positions from the primary and writes them to both
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

// GetList returns the positions matching filter and their total count.
// Without a page every match is returned.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Position, int, error) {
	var where repository.Where
	if filter.Keyword != nil && strings.TrimSpace(*filter.Keyword) != "" {
		where.Add("PositionName LIKE ?", repository.Like(*filter.Keyword))
	}

	query := "SELECT PositionID, PositionName FROM positions" + where.String() + " ORDER BY PositionID"
	if page := repository.OptionalPage(filter.Page, filter.Size, 20); page != nil {
		query += " " + r.Dialect.Paginate(page.Offset(), page.Size)
	}

	list := []entity.Position{}
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var p entity.Position
		if err := rows.Scan(&p.PositionID, &p.PositionName); err != nil {
			return err
		}
		list = append(list, p)
		return nil
	}, query, where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "selecting positions")
	}

	count, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM positions"+where.String(), where.Args()...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting positions")
	}

	return list, int(count), nil
}

// GetDetailById returns nil when the position does not exist.
func (r Repository) GetDetailById(ctx context.Context, id int64) (*entity.Position, error) {
	var found *entity.Position
	err := r.Each(ctx, func(rows *sql.Rows) error {
		var p entity.Position
		if err := rows.Scan(&p.PositionID, &p.PositionName); err != nil {
			return err
		}
		found = &p
		return nil
	}, "SELECT PositionID, PositionName FROM positions WHERE PositionID = ?", id)
	if err != nil {
		return nil, errors.Wrap(err, "selecting position detail")
	}

	return found, nil
}

// Create inserts the position on the primary, mirrors it with the same
// id on the secondary and returns the stored row.
func (r Repository) Create(ctx context.Context, request CreateRequest) (*entity.Position, error) {
	name := strings.TrimSpace(request.PositionName)
	if name == "" {
		return nil, repository.BadRequest(errors.New("PositionName is required"))
	}

	var id int64
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "create position",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			var err error
			id, err = sqldb.InsertID(ctx, tx, tx.Dialect, table, idColumn, []string{"PositionName"}, name)
			return errors.Wrap(err, "creating position")
		},
		Secondary: func(ctx context.Context, tx dualwrite.Tx) error {
			return dualwrite.InsertMirror(ctx, tx, table, idColumn, id, []string{"PositionName"}, name)
		},
	})
	if err != nil {
		return nil, err
	}

	return r.fetchWritten(ctx, id)
}

// Update renames the position on both backends.
func (r Repository) Update(ctx context.Context, id int64, request UpdateRequest) (*entity.Position, error) {
	name := strings.TrimSpace(request.PositionName)
	if name == "" {
		return nil, repository.BadRequest(errors.New("PositionName is required"))
	}

	set := dualwrite.Set{Column: "PositionName", Value: name}
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "update position",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			n, err := dualwrite.UpdateRow(ctx, tx, table, idColumn, id, set)
			if err != nil {
				return err
			}
			if n == 0 {
				return repository.NotFound("Position", id)
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

// Delete detaches the position's employees and deletes it on both
// backends.
func (r Repository) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	err := r.writer.Write(ctx, dualwrite.Op{
		Name: "delete position",
		Primary: func(ctx context.Context, tx dualwrite.Tx) error {
			if err := r.rules.Apply(ctx, tx.Tx, table, tx.Backend, id); err != nil {
				return err
			}
			n, err := dualwrite.DeleteRow(ctx, tx, table, idColumn, id)
			if err != nil {
				return err
			}
			if n == 0 {
				return repository.NotFound("Position", id)
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
		PositionID: id,
		Message:    fmt.Sprintf("Position with ID %d deleted successfully", id),
	}, nil
}

// Statistics returns the head count of every position, largest first.
func (r Repository) Statistics(ctx context.Context) ([]entity.PositionStatistic, error) {
	total, err := r.FetchInt(ctx, "SELECT COUNT(*) FROM employees")
	if err != nil {
		return nil, errors.Wrap(err, "counting employees")
	}

	query := `
		SELECT
			p.PositionID,
			p.PositionName,
			COUNT(e.EmployeeID) AS EmployeeCount,
			SUM(CASE WHEN e.Status = ? THEN 1 ELSE 0 END) AS ActiveEmployees
		FROM positions p
		LEFT JOIN employees e ON e.PositionID = p.PositionID
		GROUP BY p.PositionID, p.PositionName
		ORDER BY EmployeeCount DESC, p.PositionID`

	list := []entity.PositionStatistic{}
	err = r.Each(ctx, func(rows *sql.Rows) error {
		var (
			s      entity.PositionStatistic
			active sql.NullInt64
		)
		if err := rows.Scan(&s.PositionID, &s.PositionName, &s.EmployeeCount, &active); err != nil {
			return err
		}
		s.ActiveEmployees = active.Int64
		s.Percentage = stats.Round(stats.Percent(float64(s.EmployeeCount), float64(total)))
		list = append(list, s)
		return nil
	}, query, r.activeStatus)
	if err != nil {
		return nil, errors.Wrap(err, "selecting position statistics")
	}

	return list, nil
}

func (r Repository) fetchWritten(ctx context.Context, id int64) (*entity.Position, error) {
	p, err := r.GetDetailById(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.Errorf("position %d missing after write", id)
	}
	return p, nil
}
