package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// CSVReader streams attendee records from a CSV roster.
type CSVReader struct {
	closer io.Closer
	reader *csv.Reader
	cols   columns
}

// OpenCSV opens a CSV roster file and reads its header.
func OpenCSV(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewCSVReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewCSVReader reads the header from src and returns a reader over the
// remaining rows. Closing the returned reader does not close src.
func NewCSVReader(src io.Reader) (*CSVReader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("roster is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := newColumns(header)
	if err != nil {
		return nil, err
	}
	return &CSVReader{reader: cr, cols: cols}, nil
}

// Next returns the next attendee record, or io.EOF when the roster is exhausted.
func (r *CSVReader) Next() (domain.AttendeeRecord, error) {
	row, err := r.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.AttendeeRecord{}, io.EOF
		}
		return domain.AttendeeRecord{}, fmt.Errorf("read roster row: %w", err)
	}
	line, _ := r.reader.FieldPos(0)
	return r.cols.record(row, line), nil
}

// Close releases the underlying file, if any.
func (r *CSVReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
