package salary

import (
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/repository"
	"hrpayroll/backend/internal/repository/salary"
)

type Controller struct {
	salary Salary
}

func NewController(salary Salary) *Controller {
	return &Controller{salary}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter salary.Filter

	if employee, ok := c.GetQueryFunc(reflect.Int64, "employee_id").(*int64); ok {
		filter.EmployeeID = employee
	}
	if month, ok := c.GetQueryFunc(reflect.String, "month").(*string); ok {
		filter.Month = month
	}
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		filter.Year = year
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if size, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok {
		filter.Size = size
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.salary.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	c.SetTotal(count)
	return c.Respond(list, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.salary.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if response == nil {
		return c.RespondError(repository.NotFound("Salary record", id))
	}

	return c.Respond(response, http.StatusOK)
}

// My lists one employee's salaries, newest month first.
func (uc Controller) My(c *web.Context) error {
	employee, ok := c.GetQueryFunc(reflect.Int64, "employee_id").(*int64)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}
	if !ok {
		return c.RespondError(repository.BadRequest(errors.New("employee_id is required")))
	}

	list, err := uc.salary.My(c.Ctx, *employee)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

func (uc Controller) Generate(c *web.Context) error {
	var request salary.GenerateRequest

	if err := c.BindFunc(&request, "EmployeeID", "SalaryMonth"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.salary.Generate(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusCreated)
}

func (uc Controller) Update(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request salary.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.salary.Update(c.Ctx, id, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.salary.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

// Statistics totals one month, or one year with a monthly breakdown.
func (uc Controller) Statistics(c *web.Context) error {
	month, _ := c.GetQueryFunc(reflect.String, "month").(*string)
	year, _ := c.GetQueryFunc(reflect.Int, "year").(*int)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.salary.Statistics(c.Ctx, month, year)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
