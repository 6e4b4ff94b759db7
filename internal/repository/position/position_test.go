package position

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/dualwrite"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/pkg/testdb"
)

func newTestRepository(t *testing.T) (*Repository, *sqldb.Database, *sqldb.Database) {
	t.Helper()

	primary, secondary := testdb.Open(t)
	rules, err := cascade.Load()
	require.NoError(t, err)

	writer := dualwrite.NewCoordinator(primary, secondary, zerolog.Nop(), nil)
	return NewRepository(primary, writer, rules, "active"), primary, secondary
}

func TestCreateWritesBothBackends(t *testing.T) {
	ctx := context.Background()
	r, _, secondary := newTestRepository(t)

	d, err := r.Create(ctx, CreateRequest{PositionName: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", d.PositionName)

	rows, err := secondary.FetchRows(ctx, "SELECT PositionID, PositionName FROM positions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(d.PositionID), rows[0].Float("PositionID"))
	assert.Equal(t, "Engineer", rows[0].String("PositionName"))
}

func TestCreateRollsBackWhenSecondaryHoldsID(t *testing.T) {
	ctx := context.Background()
	r, primary, secondary := newTestRepository(t)

	_, err := secondary.Exec(ctx, "INSERT INTO positions (PositionID, PositionName) VALUES (1, 'stale')")
	require.NoError(t, err)

	_, err = r.Create(ctx, CreateRequest{PositionName: "Engineer"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dualwrite.ErrDuplicateKey))

	n, err := primary.FetchInt(ctx, "SELECT COUNT(*) FROM positions")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateRequiresName(t *testing.T) {
	r, _, _ := newTestRepository(t)

	_, err := r.Create(context.Background(), CreateRequest{PositionName: "  "})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
}

func TestGetDetailByIdMissing(t *testing.T) {
	r, _, _ := newTestRepository(t)

	d, err := r.GetDetailById(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestGetListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRepository(t)

	for _, name := range []string{"Engineer", "Analyst", "Architect", "Manager"} {
		_, err := r.Create(ctx, CreateRequest{PositionName: name})
		require.NoError(t, err)
	}

	list, count, err := r.GetList(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.Equal(t, 4, count)

	kw := "A"
	page, size := 2, 1
	list, count, err = r.GetList(ctx, Filter{Keyword: &kw, Page: &page, Size: &size})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, list, 1)
	assert.Equal(t, "Architect", list[0].PositionName)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r, primary, secondary := newTestRepository(t)

	d, err := r.Create(ctx, CreateRequest{PositionName: "Lead"})
	require.NoError(t, err)

	updated, err := r.Update(ctx, d.PositionID, UpdateRequest{PositionName: "Team Lead"})
	require.NoError(t, err)
	assert.Equal(t, "Team Lead", updated.PositionName)

	_, err = r.Update(ctx, 999, UpdateRequest{PositionName: "Nope"})
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))

	resp, err := r.Delete(ctx, d.PositionID)
	require.NoError(t, err)
	assert.Equal(t, d.PositionID, resp.PositionID)
	assert.Contains(t, resp.Message, "deleted successfully")

	for _, db := range []*sqldb.Database{primary, secondary} {
		n, err := db.FetchInt(ctx, "SELECT COUNT(*) FROM positions")
		require.NoError(t, err)
		assert.Zero(t, n, db.Name)
	}

	_, err = r.Delete(ctx, d.PositionID)
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))
}

func TestDeleteNullsEmployeeReferences(t *testing.T) {
	ctx := context.Background()
	r, primary, secondary := newTestRepository(t)

	d, err := r.Create(ctx, CreateRequest{PositionName: "Analyst"})
	require.NoError(t, err)

	for _, db := range []*sqldb.Database{primary, secondary} {
		_, err := db.Exec(ctx, "INSERT INTO employees (EmployeeID, FullName, PositionID) VALUES (1, 'Ann', ?)", d.PositionID)
		require.NoError(t, err)
	}

	_, err = r.Delete(ctx, d.PositionID)
	require.NoError(t, err)

	for _, db := range []*sqldb.Database{primary, secondary} {
		n, err := db.FetchInt(ctx, "SELECT COUNT(*) FROM employees WHERE PositionID IS NULL")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, db.Name)
	}
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	r, primary, _ := newTestRepository(t)

	eng, err := r.Create(ctx, CreateRequest{PositionName: "Engineer"})
	require.NoError(t, err)
	_, err = r.Create(ctx, CreateRequest{PositionName: "Intern"})
	require.NoError(t, err)

	for i, status := range []string{"active", "active", "resigned"} {
		_, err := primary.Exec(ctx,
			"INSERT INTO employees (EmployeeID, FullName, PositionID, Status) VALUES (?, 'x', ?, ?)",
			i+1, eng.PositionID, status)
		require.NoError(t, err)
	}
	_, err = primary.Exec(ctx, "INSERT INTO employees (EmployeeID, FullName) VALUES (4, 'y')")
	require.NoError(t, err)

	list, err := r.Statistics(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Engineer", list[0].PositionName)
	assert.Equal(t, int64(3), list[0].EmployeeCount)
	assert.Equal(t, int64(2), list[0].ActiveEmployees)
	assert.Equal(t, 75.0, list[0].Percentage)

	assert.Equal(t, "Intern", list[1].PositionName)
	assert.Zero(t, list[1].EmployeeCount)
	assert.Zero(t, list[1].Percentage)
}
