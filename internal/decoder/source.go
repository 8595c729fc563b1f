package decoder

import (
	"fmt"
	"io"

	"MetaReader/internal/model"
)

// ByteSource is a sized random-access byte source such as *bytes.Reader,
// *strings.Reader or *io.SectionReader.
type ByteSource interface {
	io.ReaderAt
	Size() int64
}

// ReadIndex reads the whole source and decodes it as an index of variant v.
func ReadIndex(v model.Variant, src ByteSource) ([]model.IndexEntry, error) {
	data, err := readAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s index: %w", v, err)
	}
	return DecodeIndex(v, data)
}

// ReadDataFile reads the whole source and decodes it as a data file.
func ReadDataFile(src ByteSource) (model.DataSeries, error) {
	data, err := readAll(src)
	if err != nil {
		return model.DataSeries{}, fmt.Errorf("read data file: %w", err)
	}
	return DecodeDataFile(data)
}

func readAll(src ByteSource) ([]byte, error) {
	buf := make([]byte, src.Size())
	n, err := src.ReadAt(buf, 0)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return nil, err
	}
	return buf, nil
}
