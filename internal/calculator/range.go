package calculator

import (
	"errors"
	"math"

	"MetaReader/internal/model"
)

// CalculateRange scans the most recent lookback rows and returns the high and low.
func CalculateRange(rows []model.DataRecord, lookback int) (high, low float64, err error) {
	if len(rows) == 0 {
		return 0, 0, errors.New("no rows provided")
	}
	if lookback <= 0 {
		return 0, 0, errors.New("lookback must be positive")
	}
	n := len(rows)
	start := n - lookback
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if rows[i].High > high {
			high = rows[i].High
		}
		if rows[i].Low < low {
			low = rows[i].Low
		}
	}
	return high, low, nil
}

// Calculate52WeekRange returns the high and low over the most recent 252 rows.
func Calculate52WeekRange(rows []model.DataRecord) (high, low float64, err error) {
	return CalculateRange(rows, 252)
}
