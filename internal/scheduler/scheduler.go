package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"MetaReader/internal/collector"
	"MetaReader/internal/recorder"
)

// ErrImportRunning is returned when an import is requested while one is in progress.
var ErrImportRunning = errors.New("import already running")

// Scheduler runs imports from a collector into a recorder, on demand or on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Ctx       context.Context

	log     *logrus.Entry
	running sync.Mutex
	last    *recorder.ImportRun
	lastMu  sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Ctx:       ctx,
		log:       logger.WithField("component", "scheduler"),
	}
}

// RegisterImport registers the periodic import task.
func (s *Scheduler) RegisterImport(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.importTask); err != nil {
		return fmt.Errorf("register import task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running import to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// LastRun returns the most recent completed import, or nil.
func (s *Scheduler) LastRun() *recorder.ImportRun {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	return s.last
}

// RunImportNow executes one import immediately. Overlapping imports are
// rejected with ErrImportRunning.
func (s *Scheduler) RunImportNow() (*recorder.ImportRun, error) {
	if !s.running.TryLock() {
		return nil, ErrImportRunning
	}
	defer s.running.Unlock()

	run := &recorder.ImportRun{
		Source:    s.Collector.Source.Name(),
		Variant:   s.Collector.Variant,
		StartedAt: time.Now(),
	}
	results, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	var errs []error
	for i := range results {
		r := &results[i]
		run.Entries++
		switch {
		case r.Missing:
			run.Missing++
		case r.Err != nil:
			run.Failed++
			continue
		}
		if err := s.Recorder.RecordSecurity(run.Source, &r.Entry, &r.Series); err != nil {
			run.Failed++
			errs = append(errs, fmt.Errorf("record %s: %w", r.Entry.Symbol, err))
			continue
		}
		run.Rows += len(r.Series.Rows)
	}
	run.FinishedAt = time.Now()

	if err := s.Recorder.RecordRun(run); err != nil {
		errs = append(errs, fmt.Errorf("record run: %w", err))
	}

	s.lastMu.Lock()
	s.last = run
	s.lastMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"run":     run.ID,
		"entries": run.Entries,
		"rows":    run.Rows,
		"missing": run.Missing,
		"failed":  run.Failed,
	}).Info("import finished")
	return run, errors.Join(errs...)
}

func (s *Scheduler) importTask() {
	s.log.Info("running scheduled import")
	if _, err := s.RunImportNow(); err != nil {
		if errors.Is(err, ErrImportRunning) {
			s.log.Warn("previous import still running, skipping")
			return
		}
		s.log.WithError(err).Error("scheduled import")
	}
}
