package report

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"MetaReader/internal/collector"
	"MetaReader/internal/model"
	"MetaReader/internal/recorder"
)

// FormatEntries lists index entries, one per line.
func FormatEntries(entries []model.IndexEntry) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSYMBOL\tNAME\tFREQ\tSTART\tEND")
	for _, e := range entries {
		freq := e.Frequency.String()
		if e.Frequency == model.FrequencyIntraday {
			freq = fmt.Sprintf("I%d", e.IntradayMinutes)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			collector.DataFileName(e.DataFileNumber), e.Symbol, e.DisplayName(), freq, e.StartDate, e.EndDate)
	}
	w.Flush()
	fmt.Fprintf(&b, "\n%d securities\n", len(entries))
	return b.String()
}

// FormatSeries renders the rows of one series. A positive limit keeps only
// the most recent rows.
func FormatSeries(entry model.IndexEntry, series model.DataSeries, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | %d rows\n\n", entry.Symbol, entry.DisplayName(), len(series.Rows))

	rows := series.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	layout := "2006-01-02"
	if series.HasTime() {
		layout = "2006-01-02 15:04"
	}

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', tabwriter.AlignRight)
	header := "TIME\tOPEN\tHIGH\tLOW\tCLOSE\t"
	if series.HasVolume() {
		header += "VOLUME\t"
	}
	if series.HasOpenInterest() {
		header += "OI\t"
	}
	fmt.Fprintln(w, header)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t", formatTime(r.Time, layout), r.Open, r.High, r.Low, r.Close)
		if series.HasVolume() {
			fmt.Fprintf(w, "%.0f\t", r.Volume)
		}
		if series.HasOpenInterest() {
			fmt.Fprintf(w, "%.0f\t", r.OpenInterest)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}

// FormatSummary renders one line per result with its series statistics.
// summaries must be parallel to results.
func FormatSummary(results []collector.Result, summaries []model.SeriesSummary) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tROWS\tFIRST\tLAST\tCLOSE\tSMA20\tRSI14\tHIGH252\tLOW252\tSTATUS")
	var missing, failed int
	for i, r := range results {
		s := summaries[i]
		status := "ok"
		switch {
		case r.Missing:
			status = "missing"
			missing++
		case r.Err != nil:
			status = "error: " + r.Err.Error()
			failed++
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.2f\t%.2f\t%.1f\t%.2f\t%.2f\t%s\n",
			r.Entry.Symbol, s.Rows, formatTime(s.First, "2006-01-02"), formatTime(s.Last, "2006-01-02"),
			s.LastClose, s.SMA20, s.RSI14, s.High252, s.Low252, status)
	}
	w.Flush()
	fmt.Fprintf(&b, "\n%d securities, %d missing, %d failed\n", len(results), missing, failed)
	return b.String()
}

// FormatImportRun summarizes an import run.
func FormatImportRun(run *recorder.ImportRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Import %s | %s\n", run.ID, run.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "source:   %s (%s)\n", run.Source, run.Variant)
	fmt.Fprintf(&b, "entries:  %d\n", run.Entries)
	fmt.Fprintf(&b, "rows:     %d\n", run.Rows)
	fmt.Fprintf(&b, "missing:  %d\n", run.Missing)
	fmt.Fprintf(&b, "failed:   %d\n", run.Failed)
	fmt.Fprintf(&b, "duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return b.String()
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format(layout)
}
