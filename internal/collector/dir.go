package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"MetaReader/internal/model"
)

// DirSource reads index and data files from one directory.
// File names are matched case-insensitively.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (d *DirSource) Name() string { return "dir:" + d.Dir }

func (d *DirSource) ReadIndex(v model.Variant) ([]byte, error) {
	return d.readFile(v.FileName())
}

func (d *DirSource) ReadDataFile(fileNumber uint16) ([]byte, error) {
	return d.readFile(DataFileName(fileNumber))
}

func (d *DirSource) readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, name))
	if err == nil || !os.IsNotExist(err) {
		return data, err
	}
	actual, ok, lookupErr := d.lookup(name)
	if lookupErr != nil {
		return nil, lookupErr
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return os.ReadFile(filepath.Join(d.Dir, actual))
}

// lookup finds a directory entry whose name equals name ignoring case.
func (d *DirSource) lookup(name string) (string, bool, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return "", false, fmt.Errorf("list %s: %w", d.Dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), name) {
			return e.Name(), true, nil
		}
	}
	return "", false, nil
}
