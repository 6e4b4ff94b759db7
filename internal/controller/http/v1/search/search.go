package search

import (
	"net/http"

	"hrpayroll/backend/foundation/web"
)

type Controller struct {
	search Search
}

func NewController(search Search) *Controller {
	return &Controller{search}
}

func (uc Controller) All(c *web.Context) error {
	response, err := uc.search.All(c.Ctx, c.Query("keyword"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
