package decoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"MetaReader/internal/codec"
	"MetaReader/internal/model"
)

// span is a 0-indexed half-open byte range inside a record.
type span struct{ from, to int }

// layout describes where each field sits in one variant's fixed record.
// readDate turns the 4 raw bytes of a date field into the packed number that
// codec.DecodePackedDate interprets; this is the only per-variant date logic.
type layout struct {
	recordLen  int
	fileNumber int // offset of a little-endian uint16
	symbol     span
	name       span
	fullName   span
	startDate  int
	endDate    int
	frequency  int
	minutes    int
	readDate   func(raw []byte) float64
}

var layouts = map[model.Variant]layout{
	model.VariantMaster: {
		recordLen:  53,
		fileNumber: 0,
		symbol:     span{36, 52},
		name:       span{7, 23},
		startDate:  25,
		endDate:    29,
		frequency:  33,
		minutes:    34,
		readDate:   mbfDate,
	},
	model.VariantEmaster: {
		recordLen:  192,
		fileNumber: 2,
		symbol:     span{11, 25},
		name:       span{32, 48},
		fullName:   span{139, 192},
		startDate:  64,
		endDate:    72,
		frequency:  60,
		minutes:    62,
		readDate:   ieeeDate,
	},
	model.VariantXmaster: {
		recordLen:  150,
		fileNumber: 65,
		symbol:     span{1, 15},
		fullName:   span{16, 62},
		startDate:  108,
		endDate:    116,
		frequency:  62,
		minutes:    64,
		readDate:   uintDate,
	},
}

// RecordLen returns the fixed record length of v, or 0 for an unknown variant.
func RecordLen(v model.Variant) int {
	return layouts[v].recordLen
}

// DecodeIndex decodes an index file of variant v. The first record is a
// header and is skipped; entries keep on-disk order.
func DecodeIndex(v model.Variant, data []byte) ([]model.IndexEntry, error) {
	l, ok := layouts[v]
	if !ok {
		return nil, fmt.Errorf("decode index: %s: %w", v, ErrUnknownVariant)
	}
	if len(data)%l.recordLen != 0 {
		return nil, fmt.Errorf("decode %s index: %d bytes is not a multiple of %d: %w",
			v, len(data), l.recordLen, ErrTruncatedRecord)
	}
	count := len(data) / l.recordLen
	if count <= 1 {
		return []model.IndexEntry{}, nil
	}

	entries := make([]model.IndexEntry, 0, count-1)
	for i := 1; i < count; i++ {
		rec := data[i*l.recordLen : (i+1)*l.recordLen]
		entries = append(entries, l.decode(v, rec))
	}
	return entries, nil
}

func (l layout) decode(v model.Variant, rec []byte) model.IndexEntry {
	return model.IndexEntry{
		Variant:         v,
		DataFileNumber:  binary.LittleEndian.Uint16(rec[l.fileNumber : l.fileNumber+2]),
		Symbol:          text(rec, l.symbol),
		Name:            text(rec, l.name),
		FullName:        text(rec, l.fullName),
		StartDate:       codec.DecodePackedDate(l.readDate(rec[l.startDate : l.startDate+4])),
		EndDate:         codec.DecodePackedDate(l.readDate(rec[l.endDate : l.endDate+4])),
		Frequency:       model.Frequency(rec[l.frequency]),
		IntradayMinutes: rec[l.minutes],
	}
}

// text extracts an ASCII field, cutting at the first NUL and trimming
// right-hand padding. Embedded spaces are kept.
func text(rec []byte, s span) string {
	if s.to <= s.from {
		return ""
	}
	b := rec[s.from:s.to]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimRight(b, " "))
}

func mbfDate(raw []byte) float64 {
	return codec.MBFToFloat(binary.LittleEndian.Uint32(raw))
}

func ieeeDate(raw []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw)))
}

// uintDate widens a plain integer date. float64 keeps every uint32 exact.
func uintDate(raw []byte) float64 {
	return float64(binary.LittleEndian.Uint32(raw))
}
