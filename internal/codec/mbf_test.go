package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MetaReader/internal/testutil"
)

func TestDecodeMBF_Zero(t *testing.T) {
	v, err := DecodeMBF([]byte{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestDecodeMBF_ZeroExponentIsZero(t *testing.T) {
	v, err := DecodeMBF([]byte{0xFF, 0xFF, 0xFF, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestDecodeMBF_KnownWords(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want float64
	}{
		{"one", []byte{0x00, 0x00, 0x00, 0x81}, 1.0},
		{"minus one", []byte{0x00, 0x00, 0x80, 0x81}, -1.0},
		{"half", []byte{0x00, 0x00, 0x00, 0x80}, 0.5},
		{"ten", []byte{0x00, 0x00, 0x20, 0x84}, 10.0},
		{"one and a half", []byte{0x00, 0x00, 0x40, 0x81}, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMBF(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMBF_EncodedValues(t *testing.T) {
	values := []float64{990104, 1010709, 20100104, 93000, 12.5, -3.25, 1234567, 0.015625}
	for _, v := range values {
		got, err := DecodeMBF(testutil.MBF(v))
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %v", v)
	}
}

func TestDecodeMBF_WrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		_, err := DecodeMBF(make([]byte, n))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedInput), "len %d: %v", n, err)
	}
}

func TestDecodeMBF_Deterministic(t *testing.T) {
	raw := testutil.MBF(4567.75)
	a, errA := DecodeMBF(raw)
	b, errB := DecodeMBF(raw)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}
