package search

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/pkg/testdb"
)

func TestAll(t *testing.T) {
	ctx := context.Background()
	primary, secondary := testdb.Open(t)

	_, err := primary.Exec(ctx, "INSERT INTO departments (DepartmentName) VALUES ('Annex'), ('Sales')")
	require.NoError(t, err)
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("Anna %02d", i)
		_, err := primary.Exec(ctx, "INSERT INTO employees (FullName, DepartmentID) VALUES (?, 1)", name)
		require.NoError(t, err)
		_, err = secondary.Exec(ctx, "INSERT INTO employees (EmployeeID, FullName) VALUES (?, ?)", i, name)
		require.NoError(t, err)
	}
	_, err = secondary.Exec(ctx, "INSERT INTO salaries (EmployeeID, SalaryMonth, NetSalary) VALUES (1, '2024-01-01', 10), (1, '2024-02-01', 20)")
	require.NoError(t, err)

	res, err := NewRepository(primary, secondary).All(ctx, " ann ")
	require.NoError(t, err)

	assert.Len(t, res.Employees, Limit)
	assert.Equal(t, []string{"employee_id", "full_name", "email", "phone_number", "department_name", "position_name"},
		res.Employees[0].Columns())
	assert.Equal(t, "Annex", res.Employees[0].String("department_name"))
	require.Len(t, res.Departments, 1)
	assert.Equal(t, "Annex", res.Departments[0].String("department_name"))
	assert.Empty(t, res.Positions)
	require.Len(t, res.Salaries, 2)
	assert.Equal(t, "2024-02-01", res.Salaries[0].String("salary_month"))
	assert.Equal(t, []string{"salary_id", "salary_month", "net_salary", "full_name"}, res.Salaries[0].Columns())
	assert.Empty(t, res.Attendance)
}

func TestAllRequiresKeyword(t *testing.T) {
	primary, secondary := testdb.Open(t)

	_, err := NewRepository(primary, secondary).All(context.Background(), "  ")
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
}
