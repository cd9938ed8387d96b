package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads a tabular file into a Table.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt Options) (*Table, error)
}

// Options controls file reading.
type Options struct {
	// Delimiter for CSV. If 0, picked from the extension (',' or '\t').
	Delimiter rune
	// DecimalSeparator for numbers. If 0, auto-detect per value.
	DecimalSeparator rune
	// XLSX sheet selection; SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no loader accepts the file.
var ErrUnsupported = errors.New("unsupported dataset format")

// Load selects a loader based on the file name and reads the table.
func Load(path string, opt Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(strings.ToLower(path)))
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
