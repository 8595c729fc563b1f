package model

import (
	"fmt"
	"time"
)

// Date is a calendar date decoded from a packed numeric value.
// The zero Date means no date was recorded.
// Components are not range-checked; a malformed source may yield month 13.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsNone reports whether d is the "no date" value.
func (d Date) IsNone() bool { return d == Date{} }

// String renders d as YYYY-MM-DD, or "none".
func (d Date) String() string {
	if d.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns d at midnight UTC, or the zero time for none.
func (d Date) Time() time.Time {
	if d.IsNone() {
		return time.Time{}
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
