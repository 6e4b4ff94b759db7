package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// TraceIDKey is the gin context key holding the request's trace id.
	TraceIDKey = "trace_id"
	// TraceIDHeader carries the trace id in and out.
	TraceIDHeader = "X-Request-Id"
	// TotalCountHeader carries the unpaged size of a list.
	TotalCountHeader = "X-Total-Count"
)

// Context is the per-request context handed to a Handler.
type Context struct {
	*gin.Context
	Ctx context.Context

	log         zerolog.Logger
	queryErrors []string
	paramErrors []string
}

// TraceID returns the request's correlation id, creating one when the
// request-id middleware did not run.
func (c *Context) TraceID() string {
	if v, ok := c.Get(TraceIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}

	id := c.GetHeader(TraceIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(TraceIDKey, id)

	return id
}

// Domain is the resource the route belongs to: the first path segment.
func (c *Context) Domain() string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	path = strings.TrimPrefix(path, "/api/v1")
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			return part
		}
	}
	return ""
}

// GetQueryFunc parses an optional query value. It returns nil when the key is
// absent, and a pointer (*int, *int64, *float64, *string, *bool) otherwise.
// Parse failures are collected and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" && kind != reflect.String {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s must be an integer", key))
			return nil
		}
		return &v
	case reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s must be an integer", key))
			return nil
		}
		return &v
	case reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s must be a number", key))
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s must be a boolean", key))
			return nil
		}
		return &v
	case reflect.String:
		return &raw
	}

	c.queryErrors = append(c.queryErrors, fmt.Sprintf("%s: unsupported kind %s", key, kind))
	return nil
}

// ValidQuery reports the query parse failures collected so far.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	err := errors.New(strings.Join(c.queryErrors, "; "))
	c.queryErrors = nil

	return NewRequestError(err, http.StatusBadRequest)
}

// GetParam parses a path value. For reflect.Int it always returns an int
// (0 on failure), for reflect.Int64 an int64 and for anything else a string.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	raw := c.Param(key)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.paramErrors = append(c.paramErrors, fmt.Sprintf("%s must be an integer", key))
		}
		return v
	case reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.paramErrors = append(c.paramErrors, fmt.Sprintf("%s must be an integer", key))
		}
		return v
	}

	return raw
}

// ValidParam reports the path parse failures collected so far.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	err := errors.New(strings.Join(c.paramErrors, "; "))
	c.paramErrors = nil

	return NewRequestError(err, http.StatusBadRequest)
}

// BindFunc decodes the JSON body into request and checks that the named
// struct fields were supplied.
func (c *Context) BindFunc(request interface{}, required ...string) error {
	if err := c.ShouldBindJSON(request); err != nil {
		return NewRequestError(errors.Wrap(err, "decoding request body"), http.StatusBadRequest)
	}

	v := reflect.Indirect(reflect.ValueOf(request))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var missing []string
	for _, name := range required {
		sf, ok := v.Type().FieldByName(name)
		if !ok {
			continue
		}
		if isBlank(v.FieldByIndex(sf.Index)) {
			missing = append(missing, jsonName(sf))
		}
	}
	if len(missing) > 0 {
		return NewRequestError(fmt.Errorf("%s is required", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// Respond writes data in the success envelope.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, NewSuccess(data, c.TraceID()))
	return nil
}

// SetTotal reports the unpaged row count of a list in the X-Total-Count header.
func (c *Context) SetTotal(n int) {
	c.Header(TotalCountHeader, strconv.Itoa(n))
}

// RespondFile sends data as a download named filename.
func (c *Context) RespondFile(filename, contentType string, data []byte) error {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
	return nil
}

// RespondError writes err in the failure envelope. Errors that are not an
// *Error are answered with 500 and logged.
func (c *Context) RespondError(err error) error {
	status := StatusOf(err)
	traceID := c.TraceID()

	var (
		message string
		details map[string]interface{}
	)
	switch {
	case status == http.StatusNotFound:
		message = err.Error()
	case status < http.StatusInternalServerError:
		message = err.Error()
		details = map[string]interface{}{"error": err.Error()}
	default:
		message = "Internal server error."
		details = map[string]interface{}{"error": err.Error()}

		c.log.Error().Err(err).
			Str("trace_id", traceID).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.JSON(status, NewFailure(status, message, c.Domain(), details, traceID))
	return nil
}

func isBlank(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isBlank(v.Elem())
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	}
	return v.IsZero()
}

func jsonName(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return sf.Name
	}
	return tag
}
