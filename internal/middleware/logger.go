package middleware

import (
	"time"

	"github.com/rs/zerolog"

	"hrpayroll/backend/foundation/web"
)

// Logger writes one access log line per request.
func Logger(log zerolog.Logger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			start := time.Now()

			err := handler(c)

			status := c.Writer.Status()
			event := log.Info()
			if status >= 500 {
				event = log.Error()
			}
			event.
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("trace_id", c.TraceID()).
				Msg("request")

			return err
		}

		return h
	}

	return m
}
