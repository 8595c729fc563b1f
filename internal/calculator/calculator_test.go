package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MetaReader/internal/model"
)

func makeRows(closes ...float64) []model.DataRecord {
	start := time.Date(2010, 1, 4, 0, 0, 0, 0, time.UTC)
	rows := make([]model.DataRecord, len(closes))
	for i, c := range closes {
		rows[i] = model.DataRecord{Time: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return rows
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	_, err = CalculateSMA([]float64{1}, 2)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1}, 0)
	assert.Error(t, err)
}

func TestCalculateRSI(t *testing.T) {
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = float64(100 + i)
	}
	v, err := CalculateRSI(makeRows(rising...), 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = CalculateRSI(makeRows(1, 2, 3), 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, v, "insufficient data is neutral")

	alternating := make([]float64, 29)
	for i := range alternating {
		alternating[i] = 100 + float64(i%2)
	}
	v, err = CalculateRSI(makeRows(alternating...), 14)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, v, 5.0)
}

func TestCalculateRange(t *testing.T) {
	h, l, err := CalculateRange(makeRows(10, 20, 15), 2)
	require.NoError(t, err)
	assert.Equal(t, 21.0, h)
	assert.Equal(t, 14.0, l)

	_, _, err = CalculateRange(nil, 5)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	rows := makeRows(closes...)
	sum := Summarize(model.DataSeries{FieldCount: 5, Rows: rows}, nil)

	assert.Equal(t, 25, sum.Rows)
	assert.Equal(t, rows[0].Time, sum.First)
	assert.Equal(t, rows[24].Time, sum.Last)
	assert.Equal(t, 25.0, sum.LastClose)
	assert.Equal(t, 15.5, sum.SMA20)
	assert.Equal(t, 26.0, sum.High252)
	assert.Equal(t, 0.0, sum.Low252)
}

func TestSummarize_ReportsShortSeries(t *testing.T) {
	var warned []string
	sum := Summarize(model.DataSeries{Rows: makeRows(1, 2)}, func(name string, err error) {
		warned = append(warned, name)
	})
	assert.Equal(t, 2, sum.Rows)
	assert.Equal(t, 0.0, sum.SMA20)
	assert.Equal(t, []string{"sma20"}, warned)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(model.DataSeries{}, nil)
	assert.Equal(t, model.SeriesSummary{}, sum)
}
