// Package decoder parses index files and numbered data files into model values.
// Decoding is pure: the same bytes always produce the same result.
package decoder

import "errors"

var (
	// ErrUnknownVariant is returned for an index variant outside master/emaster/xmaster.
	ErrUnknownVariant = errors.New("unknown index variant")
	// ErrTruncatedRecord is returned when index bytes are not a whole number of records.
	ErrTruncatedRecord = errors.New("truncated index record")
	// ErrCorruptHeader is returned when a data file size does not match its header.
	ErrCorruptHeader = errors.New("corrupt data file header")
)
