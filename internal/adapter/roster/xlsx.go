package roster

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

// XLSXReader streams attendee records from the first sheet of a workbook.
type XLSXReader struct {
	file *excelize.File
	rows *excelize.Rows
	cols columns
	line int
}

// OpenXLSX opens a workbook and reads the header row of its first sheet.
func OpenXLSX(path string) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	r, err := newXLSXReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func newXLSXReader(f *excelize.File) (*XLSXReader, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	r := &XLSXReader{file: f, rows: rows}
	header, err := r.nextRow()
	if errors.Is(err, io.EOF) {
		rows.Close()
		return nil, errors.New("roster is empty")
	}
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := newColumns(header)
	if err != nil {
		rows.Close()
		return nil, err
	}
	r.cols = cols
	return r, nil
}

// Next returns the next attendee record, or io.EOF when the sheet is exhausted.
// Blank rows are skipped.
func (r *XLSXReader) Next() (domain.AttendeeRecord, error) {
	row, err := r.nextRow()
	if err != nil {
		return domain.AttendeeRecord{}, err
	}
	return r.cols.record(row, r.line), nil
}

func (r *XLSXReader) nextRow() ([]string, error) {
	for r.rows.Next() {
		r.line++
		row, err := r.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", r.line, err)
		}
		if len(row) == 0 {
			continue
		}
		return row, nil
	}
	if err := r.rows.Error(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return nil, io.EOF
}

// Close releases the row iterator and the workbook.
func (r *XLSXReader) Close() error {
	rowsErr := r.rows.Close()
	fileErr := r.file.Close()
	return errors.Join(rowsErr, fileErr)
}
