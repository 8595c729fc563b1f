package model

import "time"

// DataRecord is one decoded row of a data file.
type DataRecord struct {
	Time         time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64 // zero unless the series has a volume column
	OpenInterest float64 // zero unless the series has an open-interest column
}

// DataSeries holds the rows of one data file in on-disk order.
type DataSeries struct {
	// FieldCount is the number of 4-byte cells per on-disk record (5 to 8),
	// or 0 when the data file was missing.
	FieldCount int
	Rows       []DataRecord
}

// HasTime reports whether rows carry a time of day.
func (s DataSeries) HasTime() bool { return s.FieldCount == 8 }

// HasVolume reports whether the source carried a volume column.
func (s DataSeries) HasVolume() bool { return s.FieldCount >= 6 }

// HasOpenInterest reports whether the source carried an open-interest column.
func (s DataSeries) HasOpenInterest() bool { return s.FieldCount >= 7 }

// Closes returns the close prices in row order.
func (s DataSeries) Closes() []float64 {
	closes := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		closes[i] = r.Close
	}
	return closes
}
