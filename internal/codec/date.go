package codec

import (
	"math"
	"time"

	"MetaReader/internal/model"
)

// DecodePackedDate interprets n as YYYYMMDD, YYMMDD (19YY) or CYYMMDD
// (1900+CYY, so 1010123 is 2001-01-23). Zero means no date.
// Values below 1e7 always get the 1900 offset; nothing is range-checked.
func DecodePackedDate(n float64) model.Date {
	v := int64(math.Floor(n))
	if v == 0 {
		return model.Date{}
	}
	day := v % 100
	month := (v / 100) % 100
	year := v / 10000
	if v/10000000 == 0 {
		year += 1900
	}
	return model.Date{Year: int(year), Month: time.Month(month), Day: int(day)}
}

// FormatDate renders d as YYYY-MM-DD, or "none".
func FormatDate(d model.Date) string {
	return d.String()
}

// DecodePackedTime interprets n as HHMMSS and returns hour and minute.
// Seconds are not carried by the format.
func DecodePackedTime(n float64) (hour, minute int) {
	hour = int(math.Floor(n / 10000))
	minute = int(math.Floor(math.Mod(n/100, 100)))
	return hour, minute
}

// Timestamp combines a packed date and an optional packed time into UTC.
// A none date yields the zero time.
func Timestamp(date model.Date, hour, minute int) time.Time {
	if date.IsNone() {
		return time.Time{}
	}
	return time.Date(date.Year, date.Month, date.Day, hour, minute, 0, 0, time.UTC)
}
