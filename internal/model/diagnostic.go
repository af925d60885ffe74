package model

import (
	"fmt"
	"sort"
	"strings"
)

// NoRow marks a diagnostic that applies to the whole table.
const NoRow = -1

// DiagnosticKind classifies why a row was dropped or a table flagged.
type DiagnosticKind string

const (
	KindSchemaError     DiagnosticKind = "schema-error"
	KindCoercionError   DiagnosticKind = "coercion-error"
	KindPaymentExcluded DiagnosticKind = "payment-excluded"
	KindZeroExcluded    DiagnosticKind = "zero-amount-excluded"
	KindBalanceMismatch DiagnosticKind = "balance-mismatch"
)

// IsError reports whether the kind signals a defect rather than an
// intentional exclusion.
func (k DiagnosticKind) IsError() bool {
	switch k {
	case KindSchemaError, KindCoercionError, KindBalanceMismatch:
		return true
	}
	return false
}

// Diagnostic is one entry of a processing report.
type Diagnostic struct {
	Row     int // original data row index, or NoRow
	Kind    DiagnosticKind
	Fields  []FieldName
	Message string
}

// FieldName names one of the required statement fields.
type FieldName string

const (
	FieldDate        FieldName = "TransactionDate"
	FieldDescription FieldName = "Description"
	FieldAmount      FieldName = "Amount"
)

// RequiredFields lists the statement fields every table must carry.
var RequiredFields = []FieldName{FieldDate, FieldDescription, FieldAmount}

// Type returns the type a field is coerced into.
func (f FieldName) Type() FieldType {
	switch f {
	case FieldDate:
		return TypeDate
	case FieldAmount:
		return TypeAmount
	}
	return TypeText
}

func (d Diagnostic) String() string {
	loc := "table"
	if d.Row != NoRow {
		loc = fmt.Sprintf("row %d", d.Row)
	}
	if len(d.Fields) == 0 {
		return fmt.Sprintf("%s: %s: %s", loc, d.Kind, d.Message)
	}
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: %s(%s): %s", loc, d.Kind, strings.Join(names, ","), d.Message)
}

// SortDiagnostics orders diagnostics by row index, keeping table-level
// entries last. Entries for the same row keep their stage order.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Row, diags[j].Row
		if a == NoRow {
			return false
		}
		if b == NoRow {
			return true
		}
		return a < b
	})
}
