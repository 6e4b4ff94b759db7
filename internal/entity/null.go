package entity

import (
	"database/sql"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

// DateOf converts a scanned DATE column.
func DateOf(t sql.NullTime) *date.Date {
	if !t.Valid {
		return nil
	}
	return &date.Date{Time: t.Time}
}

// TimeOf converts a scanned timestamp column.
func TimeOf(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// DateArg is the query argument stored for a date: "YYYY-MM-DD", or nil.
func DateArg(d *date.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time.Format("2006-01-02")
}

// StringOf converts a scanned nullable text column.
func StringOf(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// Int64Of converts a scanned nullable integer column.
func Int64Of(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
