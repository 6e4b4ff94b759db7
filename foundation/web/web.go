// Package web is a thin layer over gin that gives handlers an error return,
// a uniform JSON envelope and typed access to path and query values.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Handler handles one request. A returned error means the response could not be written.
type Handler func(c *Context) error

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// App is the entrypoint into the HTTP layer.
type App struct {
	*gin.Engine
	log zerolog.Logger
	mw  []Middleware
}

// NewApp creates an App. The middlewares run on every route, outermost first.
// Unknown routes, disallowed methods and panics are answered with the
// failure envelope.
func NewApp(log zerolog.Logger, mw ...Middleware) *App {
	engine := gin.New()
	a := &App{
		Engine: engine,
		log:    log,
		mw:     mw,
	}

	engine.Use(gin.CustomRecovery(func(gc *gin.Context, rec interface{}) {
		_ = a.context(gc).RespondError(errors.Errorf("panic: %v", rec))
		gc.Abort()
	}))
	engine.NoRoute(func(gc *gin.Context) {
		_ = a.context(gc).RespondError(NewRequestError(errors.New("route not found"), http.StatusNotFound))
	})
	engine.NoMethod(func(gc *gin.Context) {
		_ = a.context(gc).RespondError(NewRequestError(errors.New("method not allowed"), http.StatusMethodNotAllowed))
	})

	return a
}

func (a *App) context(gc *gin.Context) *Context {
	return &Context{
		Context: gc,
		Ctx:     gc.Request.Context(),
		log:     a.log,
	}
}

// Handle registers a handler for the method and path.
func (a *App) Handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := a.context(gc)

		if err := handler(c); err != nil {
			a.log.Error().Err(err).
				Str("method", method).
				Str("path", path).
				Str("trace_id", c.TraceID()).
				Msg("writing response")
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, mw...)
}

func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if h := mw[i]; h != nil {
			handler = h(handler)
		}
	}
	return handler
}
