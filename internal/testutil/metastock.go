// Package testutil builds in-memory index and data files for tests.
package testutil

import (
	"encoding/binary"
	"math"

	"MetaReader/internal/model"
)

// MBF encodes v as a 4-byte little-endian MBF cell.
// v must be representable with a 24-bit mantissa.
func MBF(v float64) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, MBFWord(v))
	return b
}

// MBFWord encodes v as an MBF word.
func MBFWord(v float64) uint32 {
	if v == 0 {
		return 0
	}
	var sign uint32
	if v < 0 {
		sign = 0x00800000
		v = -v
	}
	frac, exp := math.Frexp(v) // v = frac * 2^exp, frac in [0.5, 1)
	mantissa := uint32(math.Round(frac * (1 << 24)))
	if mantissa == 1<<24 {
		mantissa >>= 1
		exp++
	}
	return uint32(exp+128)<<24 | sign | mantissa&0x007FFFFF
}

// IndexRecord is the input for one index record.
// StartDate and EndDate are packed date numbers (e.g. 990104 or 20100104).
type IndexRecord struct {
	FileNumber      uint16
	Symbol          string
	Name            string
	FullName        string
	StartDate       float64
	EndDate         float64
	Frequency       byte
	IntradayMinutes byte
}

// RecordLen returns the fixed record length of a variant.
func RecordLen(v model.Variant) int {
	switch v {
	case model.VariantMaster:
		return 53
	case model.VariantEmaster:
		return 192
	case model.VariantXmaster:
		return 150
	}
	return 0
}

// BuildIndex writes a header record followed by recs in the layout of v.
func BuildIndex(v model.Variant, recs []IndexRecord) []byte {
	n := RecordLen(v)
	out := make([]byte, n*(len(recs)+1))
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(recs)))
	for i, r := range recs {
		b := out[n*(i+1) : n*(i+2)]
		switch v {
		case model.VariantMaster:
			binary.LittleEndian.PutUint16(b[0:2], r.FileNumber)
			putText(b[7:23], r.Name)
			copy(b[25:29], MBF(r.StartDate))
			copy(b[29:33], MBF(r.EndDate))
			b[33] = r.Frequency
			b[34] = r.IntradayMinutes
			putText(b[36:52], r.Symbol)
		case model.VariantEmaster:
			binary.LittleEndian.PutUint16(b[2:4], r.FileNumber)
			putText(b[11:25], r.Symbol)
			putText(b[32:48], r.Name)
			b[60] = r.Frequency
			b[62] = r.IntradayMinutes
			binary.LittleEndian.PutUint32(b[64:68], math.Float32bits(float32(r.StartDate)))
			binary.LittleEndian.PutUint32(b[72:76], math.Float32bits(float32(r.EndDate)))
			putText(b[139:192], r.FullName)
		case model.VariantXmaster:
			putText(b[1:15], r.Symbol)
			putText(b[16:62], r.FullName)
			b[62] = r.Frequency
			b[64] = r.IntradayMinutes
			binary.LittleEndian.PutUint16(b[65:67], r.FileNumber)
			binary.LittleEndian.PutUint32(b[108:112], uint32(r.StartDate))
			binary.LittleEndian.PutUint32(b[116:120], uint32(r.EndDate))
		}
	}
	return out
}

// BuildDataFile writes a header record followed by rows of nFields MBF cells.
// Each row must hold exactly nFields values in on-disk column order.
func BuildDataFile(nFields int, rows [][]float64) []byte {
	width := nFields * 4
	out := make([]byte, width*(len(rows)+1))
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(rows)+1))
	binary.LittleEndian.PutUint16(out[2:4], uint16(len(rows)+1))
	for i, row := range rows {
		for j, v := range row {
			off := width*(i+1) + j*4
			copy(out[off:off+4], MBF(v))
		}
	}
	return out
}

func putText(dst []byte, s string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}
