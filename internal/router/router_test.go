package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/config"
	"hrpayroll/backend/internal/pkg/dualwrite"
	"hrpayroll/backend/internal/pkg/testdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	OperationType string                 `json:"operationType"`
	Message       string                 `json:"message"`
	Code          string                 `json:"code"`
	Domain        string                 `json:"domain"`
	Data          json.RawMessage        `json:"data"`
	Size          int                    `json:"size"`
	Details       map[string]interface{} `json:"details"`
	TraceID       string                 `json:"traceId"`
}

func newRouter(t *testing.T, authURL string) *Router {
	t.Helper()

	primary, secondary := testdb.Open(t)
	rules, err := cascade.Load()
	require.NoError(t, err)

	var cfg config.Config
	cfg.Web.AllowedOrigins = []string{"*"}
	cfg.Employee.ActiveStatus = "active"
	cfg.Auth.BaseUrl = authURL
	cfg.Auth.Timeout = time.Second

	r := NewRouter(zerolog.Nop(), primary, secondary,
		dualwrite.NewCoordinator(primary, secondary, zerolog.Nop(), nil), rules, cfg)
	r.Init()
	return r
}

func do(t *testing.T, r *Router, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestDepartmentLifecycle(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	rec, env := do(t, r, http.MethodPost, "/departments", map[string]string{"DepartmentName": "Engineering"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Success", env.OperationType)

	var created struct {
		DepartmentID   int64  `json:"DepartmentID"`
		DepartmentName string `json:"DepartmentName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Engineering", created.DepartmentName)

	path := "/departments/" + strconv.FormatInt(created.DepartmentID, 10)

	rec, env = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"DepartmentName":"Engineering"`)

	rec, env = do(t, r, http.MethodGet, "/departments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, 1, env.Size)

	rec, _ = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Equal(t, "departments", env.Domain)
	assert.Empty(t, env.Details)
}

func TestValidationErrors(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	cases := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/departments", map[string]string{}},
		{http.MethodGet, "/departments/abc", nil},
		{http.MethodGet, "/salaries/my", nil},
		{http.MethodGet, "/salaries/statistics", nil},
		{http.MethodGet, "/salaries?month=March", nil},
		{http.MethodGet, "/reports/salary", nil},
		{http.MethodGet, "/reports/financial?year=24", nil},
		{http.MethodGet, "/search", nil},
		{http.MethodPost, "/attendance", map[string]interface{}{"EmployeeID": 1}},
	}
	for _, tc := range cases {
		rec, env := do(t, r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.path)
		assert.Equal(t, "BAD_REQUEST", env.Code, tc.path)
		assert.Contains(t, env.Details, "error", tc.path)
	}
}

func TestNotFoundLookups(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	for _, path := range []string{
		"/departments/9", "/positions/9", "/employees/9", "/employees/9/qrcode",
		"/salaries/9", "/attendance/9", "/dividends/9",
	} {
		rec, env := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "NOT_FOUND", env.Code, path)
	}
}

func TestPayrollFlow(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	rec, env := do(t, r, http.MethodPost, "/employees", map[string]interface{}{
		"FullName": "Ann Lee",
		"HireDate": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var employee struct {
		EmployeeID int64 `json:"EmployeeID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &employee))
	id := strconv.FormatInt(employee.EmployeeID, 10)

	rec, env = do(t, r, http.MethodPost, "/salaries/generate", map[string]interface{}{
		"EmployeeID":  id,
		"SalaryMonth": "2024-03",
		"BaseSalary":  "1000",
		"Bonus":       200,
		"Deductions":  50,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"NetSalary":1150`)

	rec, env = do(t, r, http.MethodGet, "/salaries/my?employee_id="+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Size)

	rec, env = do(t, r, http.MethodGet, "/reports/salary?year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"year":2024`)

	rec, _ = do(t, r, http.MethodGet, "/reports/salary/export?year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary-report-2024.xlsx")

	rec, _ = do(t, r, http.MethodGet, "/reports/financial/export?year=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec, _ = do(t, r, http.MethodGet, "/employees/"+id+"/qrcode", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec, _ = do(t, r, http.MethodGet, "/employees/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, r, http.MethodGet, "/search?keyword=Ann", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Ann Lee")

	rec, _ = do(t, r, http.MethodDelete, "/employees/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, r, http.MethodGet, "/salaries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, 0, env.Size)
}

func TestDividendLifecycle(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	rec, env := do(t, r, http.MethodPost, "/employees", map[string]interface{}{"FullName": "Ann Lee"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var employee struct {
		EmployeeID int64 `json:"EmployeeID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &employee))

	rec, env = do(t, r, http.MethodPost, "/dividends", map[string]interface{}{
		"EmployeeID":     strconv.FormatInt(employee.EmployeeID, 10),
		"DividendAmount": "250.5",
		"DividendDate":   "2024-05-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		DividendID     int64   `json:"DividendID"`
		EmployeeID     *int64  `json:"EmployeeID"`
		DividendAmount float64 `json:"DividendAmount"`
		DividendDate   string  `json:"DividendDate"`
		Message        string  `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Dividend record created", created.Message)
	assert.Equal(t, 250.5, created.DividendAmount)
	assert.Equal(t, "2024-05-01", created.DividendDate)
	require.NotNil(t, created.EmployeeID)
	assert.Equal(t, employee.EmployeeID, *created.EmployeeID)

	path := "/dividends/" + strconv.FormatInt(created.DividendID, 10)

	rec, env = do(t, r, http.MethodGet, "/dividends?employee_id="+strconv.FormatInt(employee.EmployeeID, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	assert.Equal(t, 1, env.Size)

	rec, env = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"DividendAmount":250.5`)

	rec, env = do(t, r, http.MethodPut, path, map[string]interface{}{"DividendAmount": 300})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"DividendAmount":300`)
	assert.Contains(t, string(env.Data), `"DividendDate":"2024-05-01"`)
	assert.Contains(t, string(env.Data), "Dividend record updated successfully")

	rec, env = do(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"deleted_record"`)
	assert.Contains(t, string(env.Data), "deleted successfully")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec, env = do(t, r, method, path, map[string]interface{}{"DividendAmount": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		assert.Equal(t, "NOT_FOUND", env.Code, method)
		assert.Equal(t, "dividends", env.Domain, method)
	}

	rec, env = do(t, r, http.MethodGet, "/dividends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Total-Count"))
}

func TestUnknownRoutesUseFailureEnvelope(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	rec, env := do(t, r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Failure", env.OperationType)
	assert.Equal(t, "NOT_FOUND", env.Code)

	rec, env = do(t, r, http.MethodPatch, "/dividends", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Code)
}

func TestDashboardRoutes(t *testing.T) {
	r := newRouter(t, "http://127.0.0.1:0")

	for _, path := range []string{
		"/dashboard/overview", "/dashboard/comparison", "/dashboard/top-employees?limit=50",
		"/dashboard/top-departments", "/dashboard/trends?months=3", "/dashboard/debug-data",
		"/departments/statistics", "/positions/statistics", "/attendance/statistics", "/health",
	} {
		rec, env := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "Success", env.OperationType, path)
	}
}

func TestAuthHealthPassthrough(t *testing.T) {
	var trace string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		trace = req.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	}))
	defer upstream.Close()

	r := newRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/auth/health", nil)
	req.Header.Set("X-Request-Id", "trace-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-42", trace)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestAuthHealthTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	upstream.Close()

	r := newRouter(t, upstream.URL)

	rec, _ := do(t, r, http.MethodGet, "/auth/health", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"exception"`)
}
