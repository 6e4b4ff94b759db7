package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/pkg/stats"
	"hrpayroll/backend/internal/pkg/testdb"
)

func exec(t *testing.T, db *sqldb.Database, queries ...string) {
	t.Helper()
	for _, q := range queries {
		_, err := db.Exec(context.Background(), q)
		require.NoError(t, err, q)
	}
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	primary, secondary := testdb.Open(t)
	exec(t, primary,
		"INSERT INTO departments (DepartmentName) VALUES ('Engineering'), ('Sales'), ('Empty')",
		"INSERT INTO positions (PositionName) VALUES ('Developer')",
		`INSERT INTO employees (FullName, HireDate, DepartmentID, PositionID, Status) VALUES
			('Ann', '2023-11-20', 1, 1, 'active'),
			('Bob', '2024-01-15', 1, NULL, 'active'),
			('Cid', '2024-03-02', 2, NULL, 'resigned')`,
		`INSERT INTO dividends (EmployeeID, DividendAmount, DividendDate) VALUES
			(1, 100, '2024-02-01'), (2, 50, '2024-03-01'), (1, 999, '2023-12-01')`,
	)
	exec(t, secondary,
		"INSERT INTO employees (EmployeeID, FullName) VALUES (1, 'Ann'), (2, 'Bob'), (3, 'Cid')",
		`INSERT INTO salaries (EmployeeID, SalaryMonth, BaseSalary, NetSalary) VALUES
			(1, '2024-03-01', 1000, 1000), (2, '2024-03-01', 500, 500), (1, '2024-02-01', 1000, 1000)`,
		`INSERT INTO attendance (EmployeeID, AttendanceMonth, WorkDays) VALUES
			(1, '2024-03-01', 20), (2, '2024-03-01', 18), (1, '2024-01-01', 22)`,
	)

	r := NewRepository(primary, secondary, "active")
	r.now = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
	return r
}

func TestClamp(t *testing.T) {
	n := func(v int) *int { return &v }

	assert.Equal(t, DefaultLimit, ClampLimit(nil))
	assert.Equal(t, DefaultLimit, ClampLimit(n(0)))
	assert.Equal(t, MaxLimit, ClampLimit(n(50)))
	assert.Equal(t, 3, ClampLimit(n(3)))

	assert.Equal(t, DefaultMonths, ClampMonths(nil))
	assert.Equal(t, 1, ClampMonths(n(-4)))
	assert.Equal(t, MaxMonths, ClampMonths(n(24)))
}

func TestOverview(t *testing.T) {
	o, err := newTestRepository(t).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), o.TotalEmployees)
	assert.Equal(t, int64(3), o.TotalDepartments)
	assert.Equal(t, int64(1), o.TotalPositions)
	assert.Equal(t, int64(2), o.ActiveEmployees)
	assert.Equal(t, "2024-03", o.CurrentMonth)
	assert.Equal(t, "2024", o.CurrentYear)
	assert.Equal(t, 1500.0, o.TotalSalaryCurrentMonth)
	assert.Equal(t, int64(38), o.TotalWorkdaysCurrentMonth)
	assert.Equal(t, 150.0, o.TotalDividendsCurrentYear)
}

func TestComparison(t *testing.T) {
	c, err := newTestRepository(t).Comparison(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-02", c.PreviousMonth)

	assert.Equal(t, 3.0, c.TotalEmployeesChange.Current)
	assert.Equal(t, 2.0, c.TotalEmployeesChange.Previous)
	assert.Equal(t, stats.TrendUp, c.TotalEmployeesChange.Trend)

	// No attendance in February.
	assert.Nil(t, c.TotalWorkdaysChange.Percentage)
	assert.Equal(t, 38.0, c.TotalWorkdaysChange.Value)

	require.NotNil(t, c.TotalSalaryChange.Percentage)
	assert.Equal(t, 50.0, *c.TotalSalaryChange.Percentage)
}

func TestTopLists(t *testing.T) {
	ctx := context.Background()
	r := newTestRepository(t)

	hires, err := r.TopEmployees(ctx, 2)
	require.NoError(t, err)
	require.Len(t, hires, 2)
	assert.Equal(t, "Cid", hires[0].FullName)
	assert.Equal(t, "Bob", hires[1].FullName)
	require.NotNil(t, hires[1].DepartmentName)
	assert.Equal(t, "Engineering", *hires[1].DepartmentName)

	depts, err := r.TopDepartments(ctx, 5)
	require.NoError(t, err)
	require.Len(t, depts, 3)
	assert.Equal(t, "Engineering", depts[0].DepartmentName)
	assert.Equal(t, int64(2), depts[0].EmployeeCount)
	assert.Zero(t, depts[2].EmployeeCount)
}

func TestTrendsZeroFill(t *testing.T) {
	tr, err := newTestRepository(t).Trends(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, tr.SalaryTrend, 3)
	assert.Equal(t, "2024-01", tr.SalaryTrend[0].Month)
	assert.Zero(t, tr.SalaryTrend[0].Value)
	assert.Equal(t, 1000.0, tr.SalaryTrend[1].Value)
	assert.Equal(t, 1500.0, tr.SalaryTrend[2].Value)

	assert.Equal(t, []float64{1, 0, 1}, values(tr.EmployeeTrend))
	assert.Equal(t, []float64{22, 0, 38}, values(tr.WorkdaysTrend))
}

func TestDebugData(t *testing.T) {
	d, err := newTestRepository(t).DebugData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", d.Vendor)
	require.Len(t, d.SalarySamples, 2)
	assert.Equal(t, "2024-03-01", d.SalarySamples[0].String("salary_month"))
	assert.Equal(t, 1500.0, d.SalarySamples[0].Float("total"))
	require.Len(t, d.AttendanceSamples, 2)
	assert.Equal(t, []string{"attendance_month", "total"}, d.AttendanceSamples[0].Columns())
}

func values(points []entity.TrendPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}
