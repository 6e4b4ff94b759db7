package attendance

import (
	"net/http"
	"reflect"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/repository"
	"hrpayroll/backend/internal/repository/attendance"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

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

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

	response, err := uc.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if response == nil {
		return c.RespondError(repository.NotFound("Timesheet", id))
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request attendance.CreateRequest

	if err := c.BindFunc(&request, "EmployeeID", "AttendanceMonth"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Create(c.Ctx, request)
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

	var request attendance.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Update(c.Ctx, id, request)
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

	response, err := uc.attendance.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Statistics(c *web.Context) error {
	month, _ := c.GetQueryFunc(reflect.String, "month").(*string)
	year, _ := c.GetQueryFunc(reflect.Int, "year").(*int)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Statistics(c.Ctx, month, year)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
