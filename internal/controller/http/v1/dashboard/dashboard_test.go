package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/entity"
)

type stub struct {
	limit  int
	months int
	err    error
}

func (s *stub) Overview(context.Context) (entity.Overview, error) { return entity.Overview{}, s.err }
func (s *stub) Comparison(context.Context) (entity.Comparison, error) {
	return entity.Comparison{}, s.err
}
func (s *stub) TopEmployees(_ context.Context, limit int) ([]entity.NewHire, error) {
	s.limit = limit
	return []entity.NewHire{}, s.err
}
func (s *stub) TopDepartments(_ context.Context, limit int) ([]entity.DepartmentHeadcount, error) {
	s.limit = limit
	return []entity.DepartmentHeadcount{}, s.err
}
func (s *stub) Trends(_ context.Context, months int) (entity.Trends, error) {
	s.months = months
	return entity.Trends{}, s.err
}
func (s *stub) DebugData(context.Context) (entity.DebugData, error) { return entity.DebugData{}, s.err }

func newApp(s *stub) *web.App {
	gin.SetMode(gin.TestMode)
	uc := NewController(s)

	app := web.NewApp(zerolog.Nop())
	app.Get("/dashboard/overview", uc.Overview)
	app.Get("/dashboard/top-employees", uc.TopEmployees)
	app.Get("/dashboard/top-departments", uc.TopDepartments)
	app.Get("/dashboard/trends", uc.Trends)
	return app
}

func get(app *web.App, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLimitsAreClamped(t *testing.T) {
	s := &stub{}
	app := newApp(s)

	cases := []struct {
		path  string
		limit int
	}{
		{"/dashboard/top-employees", 5},
		{"/dashboard/top-employees?limit=50", 20},
		{"/dashboard/top-departments?limit=3", 3},
		{"/dashboard/top-departments?limit=0", 5},
	}
	for _, tc := range cases {
		rec := get(app, tc.path)
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.limit, s.limit, tc.path)
	}
}

func TestTrendMonthsAreClamped(t *testing.T) {
	s := &stub{}
	app := newApp(s)

	for path, months := range map[string]int{
		"/dashboard/trends":           6,
		"/dashboard/trends?months=24": 12,
		"/dashboard/trends?months=2":  2,
	} {
		rec := get(app, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, months, s.months, path)
	}

	assert.Equal(t, http.StatusBadRequest, get(app, "/dashboard/trends?months=six").Code)
}

func TestRepositoryFailureIs500(t *testing.T) {
	app := newApp(&stub{err: errors.New("primary down")})

	rec := get(app, "/dashboard/overview")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_SERVER"`)
}
