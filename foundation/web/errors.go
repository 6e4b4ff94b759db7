package web

import (
	"net/http"

	"github.com/pkg/errors"
)

// Error is an error the client caused or should know about, with the status to answer.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps err with the HTTP status it should be answered with.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GetRequestError returns the *Error in err's chain, or nil.
func GetRequestError(err error) *Error {
	var re *Error
	if !errors.As(err, &re) {
		return nil
	}
	return re
}

// StatusOf reports the status an error is answered with.
func StatusOf(err error) int {
	if re := GetRequestError(err); re != nil {
		return re.Status
	}
	return http.StatusInternalServerError
}

func codeOf(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "NOT_FOUND"
	case status >= 400 && status < 500:
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER"
	}
}
