package model

import "strings"

// RawValue is an untyped cell as extracted from a statement.
type RawValue string

// Trimmed returns the cell text without surrounding whitespace.
func (v RawValue) Trimmed() string {
	return strings.TrimSpace(string(v))
}

// IsBlank reports whether the cell is empty or whitespace only.
func (v RawValue) IsBlank() bool {
	return v.Trimmed() == ""
}

// RawRow maps a column header to its cell.
type RawRow map[string]RawValue

// RawTable is an extracted statement table. Rows are in extraction order.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// NewRawTable builds a RawTable from a header and positional records. Records
// shorter than the header get blank cells; extra cells are dropped. When a
// header repeats, the cell of its first column is kept.
func NewRawTable(columns []string, records [][]string) RawTable {
	t := RawTable{
		Columns: append([]string(nil), columns...),
		Rows:    make([]RawRow, 0, len(records)),
	}
	for _, rec := range records {
		row := make(RawRow, len(columns))
		for i, col := range columns {
			if _, dup := row[col]; dup {
				continue
			}
			if i < len(rec) {
				row[col] = RawValue(rec[i])
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t RawTable) Len() int { return len(t.Rows) }

// FieldType is the closed set of types a raw cell is coerced into.
type FieldType string

const (
	TypeDate   FieldType = "date"
	TypeAmount FieldType = "amount"
	TypeText   FieldType = "text"
)
