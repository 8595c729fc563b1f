package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"MetaReader/internal/calculator"
	"MetaReader/internal/decoder"
	"MetaReader/internal/model"
)

// VariantAuto selects the index files present in the source.
const VariantAuto = "auto"

// ErrSymbolNotFound is returned by CollectSymbol when no entry matches.
var ErrSymbolNotFound = errors.New("symbol not found")

// Result joins one index entry with its decoded series.
type Result struct {
	Entry  model.IndexEntry
	Series model.DataSeries
	// Missing is set when the data file does not exist; Series is then empty.
	Missing bool
	// Err holds a decode failure for this entry only.
	Err error
}

// Collector reads an index and decodes the data file of every entry.
type Collector struct {
	Source  Source
	Variant string
	Workers int
	log     *logrus.Entry
}

// NewCollector creates a new Collector. variant is "auto" or a variant name.
func NewCollector(src Source, variant string, workers int, logger *logrus.Logger) *Collector {
	if workers <= 0 {
		workers = 1
	}
	return &Collector{
		Source:  src,
		Variant: variant,
		Workers: workers,
		log:     logger.WithField("component", "collector"),
	}
}

// Entries reads and decodes the index.
//
// In auto mode EMASTER is preferred over MASTER, and XMASTER entries are
// appended when present.
func (c *Collector) Entries() ([]model.IndexEntry, error) {
	if !strings.EqualFold(c.Variant, VariantAuto) {
		v, err := model.ParseVariant(c.Variant)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", decoder.ErrUnknownVariant, err)
		}
		return c.readIndex(v)
	}

	var entries []model.IndexEntry
	found := false
	for _, group := range [][]model.Variant{
		{model.VariantEmaster, model.VariantMaster},
		{model.VariantXmaster},
	} {
		for _, v := range group {
			got, err := c.readIndex(v)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			entries = append(entries, got...)
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no index file in %s: %w", c.Source.Name(), fs.ErrNotExist)
	}
	return entries, nil
}

func (c *Collector) readIndex(v model.Variant) ([]model.IndexEntry, error) {
	data, err := c.Source.ReadIndex(v)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	entries, err := decoder.DecodeIndex(v, data)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"variant": v.String(), "entries": len(entries)}).Debug("index decoded")
	return entries, nil
}

// Collect decodes the data files of all entries, fanning out over Workers
// goroutines. Results keep index order. Only an index failure or
// cancellation of ctx returns an error.
func (c *Collector) Collect(ctx context.Context) ([]Result, error) {
	entries, err := c.Entries()
	if err != nil {
		return nil, err
	}
	return c.CollectEntries(ctx, entries)
}

// CollectEntries decodes the data files for the given entries.
func (c *Collector) CollectEntries(ctx context.Context, entries []model.IndexEntry) ([]Result, error) {
	results := make([]Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i := range entries {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Load(entries[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var missing, failed int
	for _, r := range results {
		switch {
		case r.Missing:
			missing++
		case r.Err != nil:
			failed++
		}
	}
	c.log.WithFields(logrus.Fields{
		"source":  c.Source.Name(),
		"entries": len(results),
		"missing": missing,
		"failed":  failed,
	}).Info("collect finished")
	return results, nil
}

// CollectSymbol decodes the first entry whose symbol matches, ignoring case.
func (c *Collector) CollectSymbol(symbol string) (Result, error) {
	entries, err := c.Entries()
	if err != nil {
		return Result{}, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Symbol, symbol) {
			return c.Load(e), nil
		}
	}
	return Result{}, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
}

// Load reads and decodes the data file of one entry. A missing file yields
// an empty series rather than an error.
func (c *Collector) Load(entry model.IndexEntry) Result {
	res := Result{Entry: entry, Series: model.DataSeries{Rows: []model.DataRecord{}}}
	name := DataFileName(entry.DataFileNumber)

	data, err := c.Source.ReadDataFile(entry.DataFileNumber)
	if errors.Is(err, fs.ErrNotExist) {
		res.Missing = true
		c.log.WithFields(logrus.Fields{"symbol": entry.Symbol, "file": name}).Debug("data file missing")
		return res
	}
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", name, err)
		c.log.WithError(res.Err).WithField("symbol", entry.Symbol).Warn("data file unreadable")
		return res
	}

	series, err := decoder.DecodeDataFile(data)
	if err != nil {
		res.Err = fmt.Errorf("decode %s: %w", name, err)
		c.log.WithError(res.Err).WithField("symbol", entry.Symbol).Warn("data file skipped")
		return res
	}
	res.Series = series
	return res
}

// Summarize computes series statistics for a result, logging indicators
// that could not be computed.
func (c *Collector) Summarize(r Result) model.SeriesSummary {
	return calculator.Summarize(r.Series, func(indicator string, err error) {
		c.log.WithFields(logrus.Fields{"symbol": r.Entry.Symbol, "indicator": indicator}).
			WithError(err).Debug("indicator unavailable")
	})
}
