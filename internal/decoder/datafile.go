package decoder

import (
	"encoding/binary"
	"fmt"

	"MetaReader/internal/codec"
	"MetaReader/internal/model"
)

const (
	minFields = 5
	maxFields = 8
	timeField = 8 // field count at which column 2 holds a packed time
)

// DecodeDataFile decodes a numbered data file.
//
// The header stores the record count (header included) as a uint16 at
// offset 2; the field count is derived from the file size. Columns are
// date, [time], open, high, low, close, [volume], [open interest].
func DecodeDataFile(data []byte) (model.DataSeries, error) {
	if len(data) < 4 {
		return model.DataSeries{}, fmt.Errorf("data file of %d bytes: %w", len(data), ErrCorruptHeader)
	}
	numRecords := int(binary.LittleEndian.Uint16(data[2:4]))
	if numRecords == 0 {
		return model.DataSeries{}, fmt.Errorf("data file header holds zero records: %w", ErrCorruptHeader)
	}
	if len(data)%(numRecords*4) != 0 {
		return model.DataSeries{}, fmt.Errorf("data file of %d bytes does not divide into %d records: %w",
			len(data), numRecords, ErrCorruptHeader)
	}
	nFields := len(data) / (numRecords * 4)
	if nFields < minFields || nFields > maxFields {
		return model.DataSeries{}, fmt.Errorf("data file has %d fields per record: %w", nFields, ErrCorruptHeader)
	}

	width := nFields * 4
	rows := make([]model.DataRecord, 0, numRecords-1)
	cells := make([]float64, nFields)
	for r := 1; r < numRecords; r++ {
		rec := data[r*width : (r+1)*width]
		for i := range cells {
			cells[i] = codec.MBFToFloat(binary.LittleEndian.Uint32(rec[i*4 : i*4+4]))
		}
		rows = append(rows, foldRow(cells))
	}
	return model.DataSeries{FieldCount: nFields, Rows: rows}, nil
}

// foldRow replaces the date (and time) columns with one timestamp and maps
// the remaining cells positionally.
func foldRow(cells []float64) model.DataRecord {
	date := codec.DecodePackedDate(cells[0])
	values := cells[1:]
	var hour, minute int
	if len(cells) == timeField {
		hour, minute = codec.DecodePackedTime(cells[1])
		values = cells[2:]
	}

	rec := model.DataRecord{
		Time:  codec.Timestamp(date, hour, minute),
		Open:  values[0],
		High:  values[1],
		Low:   values[2],
		Close: values[3],
	}
	if len(values) > 4 {
		rec.Volume = values[4]
	}
	if len(values) > 5 {
		rec.OpenInterest = values[5]
	}
	return rec
}
