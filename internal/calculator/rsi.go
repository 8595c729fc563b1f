package calculator

import (
	"errors"

	"MetaReader/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI of closes over period.
// With fewer than period+1 rows the neutral value 50 is returned.
func CalculateRSI(rows []model.DataRecord, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	closes := extractCloses(rows)
	if len(closes) < period+1 {
		return 50.0, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		gain, loss := split(closes[i] - closes[i-1])
		if i <= period {
			avgGain += gain / float64(period)
			avgLoss += loss / float64(period)
			continue
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	return 100.0 - 100.0/(1.0+avgGain/avgLoss), nil
}

// split returns the positive and negative parts of a change, both >= 0.
func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}
