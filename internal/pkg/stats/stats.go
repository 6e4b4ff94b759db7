// Package stats holds the arithmetic behind the dashboard and statistics
// endpoints.
package stats

import (
	"fmt"
	"math"
)

const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Comparison is a value measured against the previous period. Percentage is
// nil when the previous period was zero and the current one is not.
type Comparison struct {
	Current    float64  `json:"current"`
	Previous   float64  `json:"previous"`
	Value      float64  `json:"value"`
	Percentage *float64 `json:"percentage"`
	Trend      string   `json:"trend"`
}

// Compare builds the Comparison of current against previous.
func Compare(current, previous float64) Comparison {
	c := Comparison{
		Current:  current,
		Previous: previous,
		Value:    current - previous,
		Trend:    TrendFlat,
	}

	switch {
	case c.Value > 0:
		c.Trend = TrendUp
	case c.Value < 0:
		c.Trend = TrendDown
	}

	switch {
	case previous != 0:
		p := Round(c.Value / math.Abs(previous) * 100)
		c.Percentage = &p
	case current == 0:
		p := 0.0
		c.Percentage = &p
	}

	return c
}

// Round rounds to two decimals.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent is part of total in percent, with total floored at 1 so an empty
// total reads as 0%.
func Percent(part, total float64) float64 {
	return Round(100 * part / math.Max(1, total))
}

// AttendanceRate is work/(work+absent) as a "93.5%" string, or "0%".
func AttendanceRate(work, absent int64) string {
	total := work + absent
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(work)/float64(total)*100)
}
