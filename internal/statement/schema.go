package statement

import (
	"strings"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// ColumnMap resolves each required field to the table header that holds it.
type ColumnMap map[model.FieldName]string

// ValidateSchema checks that table carries every required field and at least
// one data row. Headers are compared trimmed and case-insensitively; extra
// columns are ignored. When two headers normalize to the same name the first
// one is used.
func ValidateSchema(table model.RawTable, cols Columns) (ColumnMap, error) {
	index := make(map[string]string, len(table.Columns))
	for _, h := range table.Columns {
		k := normalizeHeader(h)
		if _, ok := index[k]; !ok {
			index[k] = h
		}
	}

	m := make(ColumnMap, len(model.RequiredFields))
	var missing []model.FieldName
	for _, f := range model.RequiredFields {
		found := false
		for _, name := range cols.names(f) {
			if h, ok := index[normalizeHeader(name)]; ok {
				m[f] = h
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	if table.Len() == 0 {
		return nil, &SchemaError{Empty: true}
	}
	return m, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
