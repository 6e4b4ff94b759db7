package position

import (
	"net/http"
	"reflect"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/repository"
	"hrpayroll/backend/internal/repository/position"
)

type Controller struct {
	position Position
}

func NewController(position Position) *Controller {
	return &Controller{position}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter position.Filter

	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if size, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok {
		filter.Size = size
	}
	if keyword, ok := c.GetQueryFunc(reflect.String, "keyword").(*string); ok {
		filter.Keyword = keyword
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.position.GetList(c.Ctx, filter)
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

	response, err := uc.position.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if response == nil {
		return c.RespondError(repository.NotFound("Position", id))
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request position.CreateRequest

	if err := c.BindFunc(&request, "PositionName"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.position.Create(c.Ctx, request)
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

	var request position.UpdateRequest

	if err := c.BindFunc(&request, "PositionName"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.position.Update(c.Ctx, id, request)
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

	response, err := uc.position.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Statistics(c *web.Context) error {
	response, err := uc.position.Statistics(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
