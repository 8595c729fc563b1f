package recorder

import (
	"time"

	"MetaReader/internal/model"
)

// ImportRun summarizes one pass over a source.
type ImportRun struct {
	ID         string // generated when empty
	Source     string
	Variant    string
	Entries    int
	Rows       int
	Missing    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recorder persists decoded securities for later analysis.
type Recorder interface {
	// RecordSecurity stores an entry and replaces its previously stored rows.
	RecordSecurity(source string, entry *model.IndexEntry, series *model.DataSeries) error
	RecordRun(run *ImportRun) error
	Close() error
}
