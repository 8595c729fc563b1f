package recorder

import "MetaReader/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSecurity(_ string, _ *model.IndexEntry, _ *model.DataSeries) error {
	return nil
}
func (n *NoopRecorder) RecordRun(_ *ImportRun) error { return nil }
func (n *NoopRecorder) Close() error                 { return nil }
