package health

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"hrpayroll/backend/foundation/web"
)

// Pinger is a backend that can be reached.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controller struct {
	backends map[string]Pinger
}

func NewController(backends map[string]Pinger) *Controller {
	return &Controller{backends}
}

// Check answers UP once every backend responds.
func (uc Controller) Check(c *web.Context) error {
	for name, db := range uc.backends {
		if err := db.PingContext(c.Ctx); err != nil {
			return c.RespondError(errors.Wrapf(err, "pinging %s", name))
		}
	}

	return c.Respond(map[string]string{"status": "UP"}, http.StatusOK)
}
