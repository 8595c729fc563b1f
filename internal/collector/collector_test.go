package collector

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MetaReader/internal/decoder"
	"MetaReader/internal/model"
	"MetaReader/internal/testutil"
)

func newMemorySource() *MemorySource {
	src := NewMemorySource()
	src.Index[model.VariantMaster] = testutil.BuildIndex(model.VariantMaster, []testutil.IndexRecord{
		{FileNumber: 1, Symbol: "ASR", Name: "ASR", StartDate: 990104, EndDate: 1010709, Frequency: 'D'},
		{FileNumber: 2, Symbol: "KPN", Name: "KPN", StartDate: 990104, EndDate: 1010709, Frequency: 'D'},
		{FileNumber: 3, Symbol: "BAD", Name: "BAD", Frequency: 'D'},
	})
	src.Data[1] = testutil.BuildDataFile(7, [][]float64{
		{990104, 10, 11, 9, 10.5, 1000, 0},
		{990105, 10.5, 12, 10, 11.5, 1200, 0},
	})
	src.Data[3] = []byte{1, 2, 3}
	return src
}

func TestDataFileName(t *testing.T) {
	assert.Equal(t, "F1.DAT", DataFileName(1))
	assert.Equal(t, "F255.DAT", DataFileName(255))
	assert.Equal(t, "F256.MWD", DataFileName(256))
	assert.Equal(t, "F1000.MWD", DataFileName(1000))
}

func TestCollector_Collect(t *testing.T) {
	c := NewCollector(newMemorySource(), "master", 2, testutil.Logger())

	results, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "ASR", results[0].Entry.Symbol)
	assert.NoError(t, results[0].Err)
	assert.False(t, results[0].Missing)
	assert.Equal(t, 7, results[0].Series.FieldCount)
	require.Len(t, results[0].Series.Rows, 2)
	assert.Equal(t, time.Date(1999, 1, 5, 0, 0, 0, 0, time.UTC), results[0].Series.Rows[1].Time)

	assert.Equal(t, "KPN", results[1].Entry.Symbol)
	assert.True(t, results[1].Missing, "missing data file is not an error")
	assert.NoError(t, results[1].Err)
	assert.NotNil(t, results[1].Series.Rows)
	assert.Empty(t, results[1].Series.Rows)

	assert.Equal(t, "BAD", results[2].Entry.Symbol)
	assert.True(t, errors.Is(results[2].Err, decoder.ErrCorruptHeader))
}

func TestCollector_Auto(t *testing.T) {
	src := NewMemorySource()
	src.Index[model.VariantMaster] = testutil.BuildIndex(model.VariantMaster, []testutil.IndexRecord{{FileNumber: 1, Symbol: "FROM-MASTER"}})
	src.Index[model.VariantEmaster] = testutil.BuildIndex(model.VariantEmaster, []testutil.IndexRecord{{FileNumber: 1, Symbol: "FROM-EMASTER"}})
	src.Index[model.VariantXmaster] = testutil.BuildIndex(model.VariantXmaster, []testutil.IndexRecord{{FileNumber: 300, Symbol: "FROM-XMASTER"}})

	entries, err := NewCollector(src, VariantAuto, 1, testutil.Logger()).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "FROM-EMASTER", entries[0].Symbol)
	assert.Equal(t, "FROM-XMASTER", entries[1].Symbol)

	delete(src.Index, model.VariantEmaster)
	entries, err = NewCollector(src, "AUTO", 1, testutil.Logger()).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "FROM-MASTER", entries[0].Symbol)
}

func TestCollector_NoIndex(t *testing.T) {
	_, err := NewCollector(NewMemorySource(), VariantAuto, 1, testutil.Logger()).Entries()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCollector_UnknownVariant(t *testing.T) {
	_, err := NewCollector(newMemorySource(), "megamaster", 1, testutil.Logger()).Entries()
	assert.True(t, errors.Is(err, decoder.ErrUnknownVariant))
}

func TestCollector_CollectSymbol(t *testing.T) {
	c := NewCollector(newMemorySource(), "master", 1, testutil.Logger())

	res, err := c.CollectSymbol("asr")
	require.NoError(t, err)
	assert.Equal(t, "ASR", res.Entry.Symbol)
	assert.Len(t, res.Series.Rows, 2)

	_, err = c.CollectSymbol("NOPE")
	assert.True(t, errors.Is(err, ErrSymbolNotFound))
}

func TestCollector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCollector(newMemorySource(), "master", 1, testutil.Logger()).Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollector_Summarize(t *testing.T) {
	c := NewCollector(newMemorySource(), "master", 1, testutil.Logger())
	res, err := c.CollectSymbol("ASR")
	require.NoError(t, err)

	sum := c.Summarize(res)
	assert.Equal(t, 2, sum.Rows)
	assert.Equal(t, 11.5, sum.LastClose)
	assert.Equal(t, 12.0, sum.High252)
	assert.Equal(t, 9.0, sum.Low252)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	index := testutil.BuildIndex(model.VariantMaster, []testutil.IndexRecord{
		{FileNumber: 1, Symbol: "ASR", StartDate: 990104, EndDate: 1010709, Frequency: 'D'},
		{FileNumber: 2, Symbol: "KPN", Frequency: 'D'},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Master"), index, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f1.dat"),
		testutil.BuildDataFile(5, [][]float64{{990104, 1, 2, 0.5, 1.5}}), 0o644))

	c := NewCollector(NewDirSource(dir), VariantAuto, 4, testutil.Logger())
	results, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Len(t, results[0].Series.Rows, 1)
	assert.Equal(t, 1.5, results[0].Series.Rows[0].Close)
	assert.True(t, results[1].Missing)
	assert.Empty(t, results[1].Series.Rows)
}

func TestDirSource_MissingDirectory(t *testing.T) {
	src := NewDirSource(filepath.Join(t.TempDir(), "absent"))
	_, err := src.ReadDataFile(1)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
