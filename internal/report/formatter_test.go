package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MetaReader/internal/collector"
	"MetaReader/internal/model"
	"MetaReader/internal/recorder"
)

func TestFormatEntries(t *testing.T) {
	out := FormatEntries([]model.IndexEntry{
		{DataFileNumber: 1, Symbol: "ASR", Name: "ASR NEDERLAND", StartDate: model.Date{Year: 1999, Month: 1, Day: 4}, Frequency: model.FrequencyDaily},
		{DataFileNumber: 300, Symbol: "ES", FullName: "E-mini S&P 500", Frequency: model.FrequencyIntraday, IntradayMinutes: 5},
	})
	assert.Contains(t, out, "F1.DAT")
	assert.Contains(t, out, "ASR NEDERLAND")
	assert.Contains(t, out, "1999-01-04")
	assert.Contains(t, out, "F300.MWD")
	assert.Contains(t, out, "E-mini S&P 500")
	assert.Contains(t, out, "I5")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "2 securities")
}

func TestFormatSeries(t *testing.T) {
	series := model.DataSeries{FieldCount: 8, Rows: []model.DataRecord{
		{Time: time.Date(2010, 1, 4, 9, 30, 0, 0, time.UTC), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100, OpenInterest: 7},
		{Time: time.Date(2010, 1, 4, 9, 35, 0, 0, time.UTC), Open: 1.5, High: 2, Low: 1, Close: 1.75, Volume: 50, OpenInterest: 8},
	}}
	out := FormatSeries(model.IndexEntry{Symbol: "ES"}, series, 1)
	assert.Contains(t, out, "ES |")
	assert.Contains(t, out, "2 rows")
	assert.Contains(t, out, "OI")
	assert.Contains(t, out, "2010-01-04 09:35")
	assert.NotContains(t, out, "09:30", "limit keeps the most recent rows")
}

func TestFormatSeries_DateOnly(t *testing.T) {
	series := model.DataSeries{FieldCount: 5, Rows: []model.DataRecord{
		{Time: time.Date(1999, 1, 4, 0, 0, 0, 0, time.UTC), Close: 3},
	}}
	out := FormatSeries(model.IndexEntry{Symbol: "ASR"}, series, 0)
	assert.Contains(t, out, "1999-01-04")
	assert.NotContains(t, out, "VOLUME")
	assert.NotContains(t, out, "00:00")
}

func TestFormatSummary(t *testing.T) {
	results := []collector.Result{
		{Entry: model.IndexEntry{Symbol: "ASR"}},
		{Entry: model.IndexEntry{Symbol: "KPN"}, Missing: true},
		{Entry: model.IndexEntry{Symbol: "BAD"}, Err: errors.New("decode F3.DAT: corrupt")},
	}
	summaries := []model.SeriesSummary{{Rows: 2, LastClose: 11.5}, {}, {}}
	out := FormatSummary(results, summaries)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[1], "ASR")
	assert.Contains(t, lines[1], "11.50")
	assert.Contains(t, lines[2], "missing")
	assert.Contains(t, lines[3], "error: decode F3.DAT")
	assert.Contains(t, out, "3 securities, 1 missing, 1 failed")
}

func TestFormatImportRun(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out := FormatImportRun(&recorder.ImportRun{
		ID: "abc", Source: "dir:/data", Variant: "auto", Entries: 4, Rows: 100,
		StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond),
	})
	assert.Contains(t, out, "Import abc")
	assert.Contains(t, out, "dir:/data (auto)")
	assert.Contains(t, out, "rows:     100")
	assert.Contains(t, out, "1.5s")
}
