package collector

import (
	"fmt"
	"io/fs"

	"MetaReader/internal/model"
)

// MemorySource serves fixed in-memory files, for development and testing.
type MemorySource struct {
	Index map[model.Variant][]byte
	Data  map[uint16][]byte
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		Index: make(map[model.Variant][]byte),
		Data:  make(map[uint16][]byte),
	}
}

func (m *MemorySource) Name() string { return "memory" }

func (m *MemorySource) ReadIndex(v model.Variant) ([]byte, error) {
	if b, ok := m.Index[v]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%s: %w", v.FileName(), fs.ErrNotExist)
}

func (m *MemorySource) ReadDataFile(fileNumber uint16) ([]byte, error) {
	if b, ok := m.Data[fileNumber]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%s: %w", DataFileName(fileNumber), fs.ErrNotExist)
}
