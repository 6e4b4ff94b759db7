package dividend

import (
	"net/http"
	"reflect"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/repository"
	"hrpayroll/backend/internal/repository/dividend"
)

type Controller struct {
	dividend Dividend
}

func NewController(dividend Dividend) *Controller {
	return &Controller{dividend}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter dividend.Filter

	if employee, ok := c.GetQueryFunc(reflect.Int64, "employee_id").(*int64); ok {
		filter.EmployeeID = employee
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

	list, count, err := uc.dividend.GetList(c.Ctx, filter)
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

	response, err := uc.dividend.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if response == nil {
		return c.RespondError(repository.NotFound("Dividend", id))
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request dividend.CreateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.dividend.Create(c.Ctx, request)
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

	var request dividend.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.dividend.Update(c.Ctx, id, request)
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

	response, err := uc.dividend.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
