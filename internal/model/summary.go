package model

import "time"

// SeriesSummary holds statistics computed over a decoded series.
type SeriesSummary struct {
	Rows      int
	First     time.Time
	Last      time.Time
	LastClose float64
	SMA20     float64
	RSI14     float64
	High252   float64
	Low252    float64
}
