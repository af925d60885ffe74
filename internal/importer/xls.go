package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// XLSReader reads every sheet of a legacy BIFF (.xls) workbook as a table.
type XLSReader struct{}

// Format returns the file extension handled.
func (r *XLSReader) Format() string { return "xls" }

// Read returns one table per sheet, in workbook order. Malformed workbooks
// can panic inside the BIFF decoder; that is returned as an error.
func (r *XLSReader) Read(rd io.ReadSeeker) (tables []model.RawTable, err error) {
	defer func() {
		if p := recover(); p != nil {
			tables, err = nil, fmt.Errorf("decoding workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(rd, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("no sheets found in workbook")
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		var records [][]string
		for j := 0; j <= int(sheet.MaxRow); j++ {
			row := sheet.Row(j)
			if row == nil {
				continue
			}
			rec := make([]string, 0, row.LastCol())
			for c := 0; c < row.LastCol(); c++ {
				rec = append(rec, row.Col(c))
			}
			records = append(records, rec)
		}
		tables = append(tables, FromRecords(records))
	}
	return tables, nil
}
