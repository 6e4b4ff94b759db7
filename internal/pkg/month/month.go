// Package month normalizes the month values salary and attendance rows are
// keyed by.
package month

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalid is returned for a value that is neither YYYY-MM nor YYYY-MM-DD.
var ErrInvalid = errors.New("month must be YYYY-MM or YYYY-MM-DD")

const layout = "2006-01-02"

var (
	yearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
	fullDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	year      = regexp.MustCompile(`^\d{4}$`)
)

// Normalize pads a bare year-month to the first of the month. A full date
// is returned unchanged.
func Normalize(s string) (string, error) {
	switch {
	case yearMonth.MatchString(s):
		s += "-01"
	case fullDate.MatchString(s):
	default:
		return "", errors.Wrapf(ErrInvalid, "%q", s)
	}

	if _, err := time.Parse(layout, s); err != nil {
		return "", errors.Wrapf(ErrInvalid, "%q", s)
	}
	return s, nil
}

// YearPattern returns the LIKE pattern matching every month of a year.
func YearPattern(y int) string {
	return strconv.Itoa(y) + "-%"
}

// ParseYear validates a four digit year.
func ParseYear(s string) (int, error) {
	if !year.MatchString(s) {
		return 0, errors.Errorf("year must be YYYY, got %q", s)
	}
	return strconv.Atoi(s)
}

// First returns the stored form of the month t falls in.
func First(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(layout)
}

// DaysIn returns the number of days of the month s belongs to, or 30 when s
// cannot be read.
func DaysIn(s string) int {
	n, err := Normalize(s)
	if err != nil {
		if len(s) < 7 {
			return 30
		}
		if n, err = Normalize(s[:7]); err != nil {
			return 30
		}
	}
	t, _ := time.Parse(layout, n)
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Last returns the n months ending with the month of now, oldest first, as
// YYYY-MM strings.
func Last(now time.Time, n int) []string {
	list := make([]string, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		list = append(list, first.AddDate(0, -i, 0).Format("2006-01"))
	}
	return list
}
