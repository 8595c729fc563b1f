package collector

import (
	"fmt"

	"MetaReader/internal/model"
)

// Source supplies the raw bytes of index and data files.
// Both reads return an error matching fs.ErrNotExist when the file is absent.
type Source interface {
	ReadIndex(v model.Variant) ([]byte, error)
	ReadDataFile(fileNumber uint16) ([]byte, error)
	Name() string
}

// DataFileName maps a data file number to its conventional file name.
func DataFileName(fileNumber uint16) string {
	if fileNumber <= 255 {
		return fmt.Sprintf("F%d.DAT", fileNumber)
	}
	return fmt.Sprintf("F%d.MWD", fileNumber)
}
