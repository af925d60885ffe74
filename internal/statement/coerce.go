package statement

import (
	"strings"
	"time"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/model"
)

// ParseDate tries layouts in order and returns the first full match.
func ParseDate(raw string, layouts []string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Coerce converts every row of table to a typed Transaction. Rows with any
// field that fails to convert are left out and reported as a single
// coercion-error diagnostic naming every failing field. Surviving rows keep
// their input order.
func Coerce(table model.RawTable, cols ColumnMap, cfg Config) ([]model.Transaction, []model.Diagnostic) {
	txns := make([]model.Transaction, 0, table.Len())
	var diags []model.Diagnostic
	for i, row := range table.Rows {
		txn, errs := coerceRow(i, row, cols, cfg.DateLayouts)
		if len(errs) > 0 {
			diags = append(diags, coercionDiagnostic(i, errs))
			continue
		}
		txns = append(txns, txn)
	}
	return txns, diags
}

// coerceRow converts each required field according to its type. Every
// failing field is reported; the row is usable only when none fail.
func coerceRow(index int, row model.RawRow, cols ColumnMap, layouts []string) (model.Transaction, []*CoercionError) {
	txn := model.Transaction{Row: index}
	var errs []*CoercionError
	for _, f := range model.RequiredFields {
		raw := row[cols[f]]
		var reason string
		switch f.Type() {
		case model.TypeDate:
			d, ok := ParseDate(string(raw), layouts)
			if !ok {
				reason = "no matching date layout"
				break
			}
			txn.Date = d
		case model.TypeAmount:
			amt, ok := amount.Parse(string(raw))
			if !ok {
				reason = "not an amount"
				break
			}
			txn.Amount = amt
		case model.TypeText:
			if raw.IsBlank() {
				reason = "empty " + strings.ToLower(string(f))
				break
			}
			txn.Description = raw.Trimmed()
		}
		if reason != "" {
			errs = append(errs, &CoercionError{Row: index, Field: f, Raw: string(raw), Reason: reason})
		}
	}
	if len(errs) > 0 {
		return model.Transaction{}, errs
	}
	return txn, nil
}

func coercionDiagnostic(index int, errs []*CoercionError) model.Diagnostic {
	fields := make([]model.FieldName, len(errs))
	msgs := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
		msgs[i] = "parsing " + string(e.Field) + " " + quote(e.Raw) + ": " + e.Reason
	}
	return model.Diagnostic{
		Row:     index,
		Kind:    model.KindCoercionError,
		Fields:  fields,
		Message: strings.Join(msgs, "; "),
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
