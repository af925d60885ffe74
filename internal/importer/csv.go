package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// CSVReader reads a statement table exported as CSV. The first non-blank
// record is the header; rows may be ragged.
type CSVReader struct{}

// Format returns the file extension handled.
func (r *CSVReader) Format() string { return "csv" }

// Read returns the single table held by a CSV file.
func (r *CSVReader) Read(rd io.ReadSeeker) ([]model.RawTable, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return []model.RawTable{FromRecords(records)}, nil
}
