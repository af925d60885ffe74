package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// XLSXReader reads every sheet of an Excel workbook as a table.
type XLSXReader struct{}

// Format returns the file extension handled.
func (r *XLSXReader) Format() string { return "xlsx" }

// Read returns one table per sheet, in workbook order.
func (r *XLSXReader) Read(rd io.ReadSeeker) ([]model.RawTable, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var tables []model.RawTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		tables = append(tables, FromRecords(rows))
	}
	return tables, nil
}
