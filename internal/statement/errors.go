package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/model"
)

// ErrEmptyTable matches a SchemaError raised for a table without data rows.
var ErrEmptyTable = errors.New("table has no data rows")

// SchemaError aborts a table: required columns are missing or there are no
// rows to process.
type SchemaError struct {
	Missing []model.FieldName
	Empty   bool
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		names := make([]string, len(e.Missing))
		for i, f := range e.Missing {
			names[i] = string(f)
		}
		return "missing required columns: " + strings.Join(names, ", ")
	}
	return ErrEmptyTable.Error()
}

// Is lets errors.Is(err, ErrEmptyTable) match empty-table failures.
func (e *SchemaError) Is(target error) bool {
	return e.Empty && len(e.Missing) == 0 && target == ErrEmptyTable
}

// CoercionError describes one cell that could not be converted to its type.
type CoercionError struct {
	Row    int
	Field  model.FieldName
	Raw    string
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d: parsing %s %q: %s", e.Row, e.Field, e.Raw, e.Reason)
}

// BalanceError reports a reconciliation mismatch. Delta is Actual - Expected.
type BalanceError struct {
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Delta    decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("ending balance %s != computed %s (delta %s)",
		amount.Format(e.Expected), amount.Format(e.Actual), amount.Format(e.Delta))
}
