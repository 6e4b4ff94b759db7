package router

import (
	"github.com/rs/zerolog"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/middleware"
	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/config"
	"hrpayroll/backend/internal/pkg/dualwrite"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/repository/attendance"
	"hrpayroll/backend/internal/repository/dashboard"
	"hrpayroll/backend/internal/repository/department"
	"hrpayroll/backend/internal/repository/dividend"
	"hrpayroll/backend/internal/repository/employee"
	"hrpayroll/backend/internal/repository/position"
	"hrpayroll/backend/internal/repository/report"
	"hrpayroll/backend/internal/repository/salary"
	"hrpayroll/backend/internal/repository/search"
	"hrpayroll/backend/internal/service/auth"

	attendance_controller "hrpayroll/backend/internal/controller/http/v1/attendance"
	auth_controller "hrpayroll/backend/internal/controller/http/v1/auth"
	dashboard_controller "hrpayroll/backend/internal/controller/http/v1/dashboard"
	department_controller "hrpayroll/backend/internal/controller/http/v1/department"
	dividend_controller "hrpayroll/backend/internal/controller/http/v1/dividend"
	employee_controller "hrpayroll/backend/internal/controller/http/v1/employee"
	health_controller "hrpayroll/backend/internal/controller/http/v1/health"
	position_controller "hrpayroll/backend/internal/controller/http/v1/position"
	report_controller "hrpayroll/backend/internal/controller/http/v1/report"
	salary_controller "hrpayroll/backend/internal/controller/http/v1/salary"
	search_controller "hrpayroll/backend/internal/controller/http/v1/search"
)

type Router struct {
	*web.App
	primary   *sqldb.Database
	secondary *sqldb.Database
	writer    dualwrite.DualWriter
	rules     cascade.Rules
	cfg       config.Config
}

// NewRouter creates the app with the request-id, CORS and access log
// middlewares in front of every route.
func NewRouter(
	log zerolog.Logger,
	primary *sqldb.Database,
	secondary *sqldb.Database,
	writer dualwrite.DualWriter,
	rules cascade.Rules,
	cfg config.Config,
) *Router {
	app := web.NewApp(log, middleware.Logger(log))
	app.Use(middleware.RequestID(), middleware.CORSMiddleware(cfg.Web.AllowedOrigins))

	return &Router{
		app,
		primary,
		secondary,
		writer,
		rules,
		cfg,
	}
}

// Init registers every route.
func (r Router) Init() {
	r.HandleMethodNotAllowed = true

	active := r.cfg.Employee.ActiveStatus

	// repositories
	departmentRepo := department.NewRepository(r.primary, r.writer, r.rules, active)
	positionRepo := position.NewRepository(r.primary, r.writer, r.rules, active)
	employeeRepo := employee.NewRepository(r.primary, r.writer, r.rules, active)
	salaryRepo := salary.NewRepository(r.secondary)
	attendanceRepo := attendance.NewRepository(r.secondary)
	dividendRepo := dividend.NewRepository(r.primary, r.writer, r.rules)
	dashboardRepo := dashboard.NewRepository(r.primary, r.secondary, active)
	reportRepo := report.NewRepository(r.primary, r.secondary)
	searchRepo := search.NewRepository(r.primary, r.secondary)

	// controller
	departmentController := department_controller.NewController(departmentRepo)
	positionController := position_controller.NewController(positionRepo)
	employeeController := employee_controller.NewController(employeeRepo)
	salaryController := salary_controller.NewController(salaryRepo)
	attendanceController := attendance_controller.NewController(attendanceRepo)
	dividendController := dividend_controller.NewController(dividendRepo)
	dashboardController := dashboard_controller.NewController(dashboardRepo)
	reportController := report_controller.NewController(reportRepo)
	searchController := search_controller.NewController(searchRepo)
	authController := auth_controller.NewController(auth.NewClient(r.cfg.Auth.BaseUrl, r.cfg.Auth.Timeout))
	healthController := health_controller.NewController(map[string]health_controller.Pinger{
		r.primary.Name:   r.primary,
		r.secondary.Name: r.secondary,
	})

	r.Get("/health", healthController.Check)
	r.Get("/auth/health", authController.Health)

	// #department
	r.Get("/departments", departmentController.GetList)
	r.Get("/departments/statistics", departmentController.Statistics)
	r.Get("/departments/:id", departmentController.GetDetailById)
	r.Get("/departments/:id/employees", employeeController.ByDepartment)
	r.Post("/departments", departmentController.Create)
	r.Put("/departments/:id", departmentController.Update)
	r.Delete("/departments/:id", departmentController.Delete)

	// #position
	r.Get("/positions", positionController.GetList)
	r.Get("/positions/statistics", positionController.Statistics)
	r.Get("/positions/:id", positionController.GetDetailById)
	r.Get("/positions/:id/employees", employeeController.ByPosition)
	r.Post("/positions", positionController.Create)
	r.Put("/positions/:id", positionController.Update)
	r.Delete("/positions/:id", positionController.Delete)

	// #employee
	r.Get("/employees", employeeController.GetList)
	r.Get("/employees/export", employeeController.Export)
	r.Get("/employees/:id", employeeController.GetDetailById)
	r.Get("/employees/:id/qrcode", employeeController.QRCode)
	r.Post("/employees", employeeController.Create)
	r.Put("/employees/:id", employeeController.Update)
	r.Delete("/employees/:id", employeeController.Delete)

	// #salary
	r.Get("/salaries", salaryController.GetList)
	r.Get("/salaries/my", salaryController.My)
	r.Get("/salaries/statistics", salaryController.Statistics)
	r.Get("/salaries/:id", salaryController.GetDetailById)
	r.Post("/salaries/generate", salaryController.Generate)
	r.Put("/salaries/:id", salaryController.Update)
	r.Delete("/salaries/:id", salaryController.Delete)

	// #attendance
	r.Get("/attendance", attendanceController.GetList)
	r.Get("/attendance/statistics", attendanceController.Statistics)
	r.Get("/attendance/:id", attendanceController.GetDetailById)
	r.Post("/attendance", attendanceController.Create)
	r.Put("/attendance/:id", attendanceController.Update)
	r.Delete("/attendance/:id", attendanceController.Delete)

	// #dividend
	r.Get("/dividends", dividendController.GetList)
	r.Get("/dividends/:id", dividendController.GetDetailById)
	r.Post("/dividends", dividendController.Create)
	r.Put("/dividends/:id", dividendController.Update)
	r.Delete("/dividends/:id", dividendController.Delete)

	// #dashboard
	r.Get("/dashboard/overview", dashboardController.Overview)
	r.Get("/dashboard/comparison", dashboardController.Comparison)
	r.Get("/dashboard/top-employees", dashboardController.TopEmployees)
	r.Get("/dashboard/top-departments", dashboardController.TopDepartments)
	r.Get("/dashboard/trends", dashboardController.Trends)
	r.Get("/dashboard/debug-data", dashboardController.DebugData)

	// #report
	r.Get("/reports/salary", reportController.Salary)
	r.Get("/reports/salary/export", reportController.SalaryExport)
	r.Get("/reports/attendance", reportController.Attendance)
	r.Get("/reports/financial", reportController.Financial)
	r.Get("/reports/financial/export", reportController.FinancialExport)

	// #search
	r.Get("/search", searchController.All)
}

// Run serves on the configured address until the server fails.
func (r Router) Run() error {
	return r.App.Run(r.cfg.Web.Addr)
}
