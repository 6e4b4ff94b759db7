package dashboard

import (
	"net/http"
	"reflect"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/repository/dashboard"
)

type Controller struct {
	dashboard Dashboard
}

func NewController(dashboard Dashboard) *Controller {
	return &Controller{dashboard}
}

func (uc Controller) Overview(c *web.Context) error {
	response, err := uc.dashboard.Overview(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Comparison(c *web.Context) error {
	response, err := uc.dashboard.Comparison(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) TopEmployees(c *web.Context) error {
	limit, _ := c.GetQueryFunc(reflect.Int, "limit").(*int)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.dashboard.TopEmployees(c.Ctx, dashboard.ClampLimit(limit))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) TopDepartments(c *web.Context) error {
	limit, _ := c.GetQueryFunc(reflect.Int, "limit").(*int)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.dashboard.TopDepartments(c.Ctx, dashboard.ClampLimit(limit))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Trends(c *web.Context) error {
	months, _ := c.GetQueryFunc(reflect.Int, "months").(*int)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.dashboard.Trends(c.Ctx, dashboard.ClampMonths(months))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) DebugData(c *web.Context) error {
	response, err := uc.dashboard.DebugData(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
