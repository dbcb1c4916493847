// Package roster reads attendee rosters from CSV files and XLSX workbooks.
package roster

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// Reader yields attendee records one at a time. Next returns io.EOF after the
// last record.
type Reader interface {
	Next() (domain.AttendeeRecord, error)
	Close() error
}

// Open returns a Reader for path, choosing the format from its extension.
// ".xlsx" files are read as workbooks; everything else is parsed as CSV.
func Open(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		r, err := OpenXLSX(path)
		if err != nil {
			return nil, fmt.Errorf("open roster %s: %w", path, err)
		}
		return r, nil
	default:
		r, err := OpenCSV(path)
		if err != nil {
			return nil, fmt.Errorf("open roster %s: %w", path, err)
		}
		return r, nil
	}
}
