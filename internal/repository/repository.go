// Package repository holds what the entity repositories share.
package repository

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"hrpayroll/backend/foundation/web"
)

// ErrNotFound is returned when the row to change does not exist.
var ErrNotFound = errors.New("not found")

// NotFound is the 404 for a missing row of kind with id.
func NotFound(kind string, id int64) error {
	return web.NewRequestError(errors.Wrapf(ErrNotFound, "%s with ID %d", kind, id), http.StatusNotFound)
}

// BadRequest is the 400 for a request the caller has to fix.
func BadRequest(err error) error {
	return web.NewRequestError(err, http.StatusBadRequest)
}

// Page is an offset/limit window.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows before the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NewPage fills missing or non-positive values with page 1 and defSize.
func NewPage(number, size *int, defSize int) Page {
	p := Page{Number: 1, Size: defSize}
	if number != nil && *number > 0 {
		p.Number = *number
	}
	if size != nil && *size > 0 {
		p.Size = *size
	}
	return p
}

// OptionalPage is NewPage when either value was given, nil otherwise.
func OptionalPage(number, size *int, defSize int) *Page {
	if number == nil && size == nil {
		return nil
	}
	p := NewPage(number, size, defSize)
	return &p
}

// Where collects ANDed conditions and their arguments.
type Where struct {
	conds []string
	args  []interface{}
}

// Add appends a condition with its '?' arguments.
func (w *Where) Add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// String renders " WHERE ..." or "".
func (w *Where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []interface{} {
	return w.args
}

// Like wraps s for a contains match.
func Like(s string) string {
	return "%" + strings.TrimSpace(s) + "%"
}
