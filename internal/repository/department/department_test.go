package department

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

	d, err := r.Create(ctx, CreateRequest{DepartmentName: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", d.DepartmentName)

	rows, err := secondary.FetchRows(ctx, "SELECT DepartmentID, DepartmentName FROM departments")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(d.DepartmentID), rows[0].Float("DepartmentID"))
	assert.Equal(t, "Engineering", rows[0].String("DepartmentName"))
}

func TestCreateRollsBackWhenSecondaryHoldsID(t *testing.T) {
	ctx := context.Background()
	r, primary, secondary := newTestRepository(t)

	_, err := secondary.Exec(ctx, "INSERT INTO departments (DepartmentID, DepartmentName) VALUES (1, 'stale')")
	require.NoError(t, err)

	_, err = r.Create(ctx, CreateRequest{DepartmentName: "Engineering"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dualwrite.ErrDuplicateKey))

	n, err := primary.FetchInt(ctx, "SELECT COUNT(*) FROM departments")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateRequiresName(t *testing.T) {
	r, _, _ := newTestRepository(t)

	_, err := r.Create(context.Background(), CreateRequest{DepartmentName: "  "})
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

	for _, name := range []string{"Engineering", "Sales", "Support", "Finance"} {
		_, err := r.Create(ctx, CreateRequest{DepartmentName: name})
		require.NoError(t, err)
	}

	list, count, err := r.GetList(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.Equal(t, 4, count)

	kw := "S"
	page, size := 2, 1
	list, count, err = r.GetList(ctx, Filter{Keyword: &kw, Page: &page, Size: &size})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, list, 1)
	assert.Equal(t, "Support", list[0].DepartmentName)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r, primary, secondary := newTestRepository(t)

	d, err := r.Create(ctx, CreateRequest{DepartmentName: "Ops"})
	require.NoError(t, err)

	updated, err := r.Update(ctx, d.DepartmentID, UpdateRequest{DepartmentName: "Operations"})
	require.NoError(t, err)
	assert.Equal(t, "Operations", updated.DepartmentName)

	_, err = r.Update(ctx, 999, UpdateRequest{DepartmentName: "Nope"})
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))

	resp, err := r.Delete(ctx, d.DepartmentID)
	require.NoError(t, err)
	assert.Equal(t, d.DepartmentID, resp.DepartmentID)
	assert.Contains(t, resp.Message, "deleted successfully")

	for _, db := range []*sqldb.Database{primary, secondary} {
		n, err := db.FetchInt(ctx, "SELECT COUNT(*) FROM departments")
		require.NoError(t, err)
		assert.Zero(t, n, db.Name)
	}

	_, err = r.Delete(ctx, d.DepartmentID)
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))
}

func TestDeleteNullsEmployeeReferences(t *testing.T) {
	ctx := context.Background()
	r, primary, secondary := newTestRepository(t)

	d, err := r.Create(ctx, CreateRequest{DepartmentName: "Sales"})
	require.NoError(t, err)

	for _, db := range []*sqldb.Database{primary, secondary} {
		_, err := db.Exec(ctx, "INSERT INTO employees (EmployeeID, FullName, DepartmentID) VALUES (1, 'Ann', ?)", d.DepartmentID)
		require.NoError(t, err)
	}

	_, err = r.Delete(ctx, d.DepartmentID)
	require.NoError(t, err)

	for _, db := range []*sqldb.Database{primary, secondary} {
		n, err := db.FetchInt(ctx, "SELECT COUNT(*) FROM employees WHERE DepartmentID IS NULL")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, db.Name)
	}
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	r, primary, _ := newTestRepository(t)

	eng, err := r.Create(ctx, CreateRequest{DepartmentName: "Engineering"})
	require.NoError(t, err)
	_, err = r.Create(ctx, CreateRequest{DepartmentName: "Empty"})
	require.NoError(t, err)

	for i, status := range []string{"active", "active", "resigned"} {
		_, err := primary.Exec(ctx,
			"INSERT INTO employees (EmployeeID, FullName, DepartmentID, Status) VALUES (?, 'x', ?, ?)",
			i+1, eng.DepartmentID, status)
		require.NoError(t, err)
	}
	_, err = primary.Exec(ctx, "INSERT INTO employees (EmployeeID, FullName) VALUES (4, 'y')")
	require.NoError(t, err)

	list, err := r.Statistics(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Engineering", list[0].DepartmentName)
	assert.Equal(t, int64(3), list[0].EmployeeCount)
	assert.Equal(t, int64(2), list[0].ActiveEmployees)
	assert.Equal(t, 75.0, list[0].Percentage)

	assert.Equal(t, "Empty", list[1].DepartmentName)
	assert.Zero(t, list[1].EmployeeCount)
	assert.Zero(t, list[1].Percentage)
}
