// Package codec converts the raw numeric encodings used by the index and
// data files: the 4-byte Microsoft Binary Format float and packed dates.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedInput is returned when a cell is not exactly 4 bytes.
var ErrMalformedInput = errors.New("malformed input")

// MBFSize is the width of one encoded cell.
const MBFSize = 4

const (
	mbfSignBit      = 0x00800000
	mbfMantissa     = 0x007FFFFF
	mbfHiddenBit    = 0x00800000 // restored in place of the sign bit
	mbfExponentBias = 152        // 128 bias + 24 mantissa bits
)

// DecodeMBF decodes a little-endian 4-byte MBF cell.
func DecodeMBF(b []byte) (float64, error) {
	if len(b) != MBFSize {
		return 0, fmt.Errorf("mbf cell of %d bytes: %w", len(b), ErrMalformedInput)
	}
	return MBFToFloat(binary.LittleEndian.Uint32(b)), nil
}

// MBFToFloat decodes an MBF word.
// Layout: bits 31-24 biased exponent, bit 23 sign, bits 22-0 mantissa with
// an implicit leading one. A zero exponent byte is zero regardless of the
// other bits; the format has no NaN or infinity.
func MBFToFloat(w uint32) float64 {
	exp := int(w >> 24)
	if exp == 0 {
		return 0
	}
	mantissa := float64((w & mbfMantissa) | mbfHiddenBit)
	v := math.Ldexp(mantissa, exp-mbfExponentBias)
	if w&mbfSignBit != 0 {
		return -v
	}
	return v
}
