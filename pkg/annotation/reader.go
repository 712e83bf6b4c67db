package annotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cyclopcam/logs"
)

var ErrMissingColumn = errors.New("Missing column")
var ErrNoHeader = errors.New("CSV file has no header row")

// Reader reads AnnotationRecords from a CSV file that has a header row.
// Columns are found by name, so their order doesn't matter, and extra columns are ignored.
type Reader struct {
	log     logs.Log
	csv     *csv.Reader
	columns map[string]int
	row     int
}

// NewReader reads the header row and verifies that all RequiredColumns are present
func NewReader(log logs.Log, r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	// Rows may be shorter than the header. Missing fields are treated as empty.
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	} else if err != nil {
		return nil, fmt.Errorf("Error reading CSV header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w '%v'", ErrMissingColumn, name)
		}
	}

	return &Reader{
		log:     log,
		csv:     cr,
		columns: columns,
	}, nil
}

func (r *Reader) field(record []string, column string) string {
	i := r.columns[column]
	if i < len(record) {
		return record[i]
	}
	return ""
}

// Next returns the next record, or io.EOF when there are no more rows
func (r *Reader) Next() (*AnnotationRecord, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("Error reading CSV row %v: %w", r.row+1, err)
	}
	r.row++
	row := Row{
		Filename:        r.field(record, ColumnFilename),
		TrueBoxes:       r.field(record, ColumnTrueBoxes),
		TrueLabels:      r.field(record, ColumnTrueLabels),
		PredBoxes:       r.field(record, ColumnPredBoxes),
		PredictedLabels: r.field(record, ColumnPredictedLabels),
	}
	return row.Decode(r.log, r.row), nil
}

// ReadAll reads up to limit records. If limit is zero or negative, all records are read.
func (r *Reader) ReadAll(limit int) ([]*AnnotationRecord, error) {
	records := []*AnnotationRecord{}
	for limit <= 0 || len(records) < limit {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadFile reads up to limit records from a CSV file
func LoadFile(log logs.Log, filename string, limit int) ([]*AnnotationRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader, err := NewReader(log, f)
	if err != nil {
		return nil, fmt.Errorf("Error loading %v: %w", filename, err)
	}
	records, err := reader.ReadAll(limit)
	if err != nil {
		return nil, fmt.Errorf("Error loading %v: %w", filename, err)
	}
	return records, nil
}
