package calculator

import "MetaReader/internal/model"

// Summarize computes the statistics of a series. Indicators that cannot be
// computed are left at zero and reported through warn, when non-nil.
func Summarize(series model.DataSeries, warn func(indicator string, err error)) model.SeriesSummary {
	rows := series.Rows
	sum := model.SeriesSummary{Rows: len(rows)}
	if len(rows) == 0 {
		return sum
	}
	sum.First = rows[0].Time
	sum.Last = rows[len(rows)-1].Time
	sum.LastClose = rows[len(rows)-1].Close

	if warn == nil {
		warn = func(string, error) {}
	}
	if v, err := CalculateSMA20(rows); err != nil {
		warn("sma20", err)
	} else {
		sum.SMA20 = v
	}
	if v, err := CalculateRSI(rows, 14); err != nil {
		warn("rsi14", err)
	} else {
		sum.RSI14 = v
	}
	if h, l, err := Calculate52WeekRange(rows); err != nil {
		warn("range252", err)
	} else {
		sum.High252 = h
		sum.Low252 = l
	}
	return sum
}
