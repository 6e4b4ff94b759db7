package auth

import (
	"net/http"

	"hrpayroll/backend/foundation/web"
)

type Controller struct {
	auth Auth
}

func NewController(auth Auth) *Controller {
	return &Controller{auth}
}

// Health relays the auth service's health check. A failed call is answered
// with 500 and the transport error.
func (uc Controller) Health(c *web.Context) error {
	response, err := uc.auth.Health(c.Ctx, c.TraceID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]string{"exception": err.Error()})
		return nil
	}

	return c.Respond(response, http.StatusOK)
}
