package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{Row: NoRow, Kind: KindBalanceMismatch},
		{Row: 4, Kind: KindPaymentExcluded},
		{Row: 1, Kind: KindCoercionError},
		{Row: 4, Kind: KindZeroExcluded},
		{Row: 0, Kind: KindCoercionError},
	}
	SortDiagnostics(diags)

	rows := make([]int, len(diags))
	for i, d := range diags {
		rows[i] = d.Row
	}
	assert.Equal(t, []int{0, 1, 4, 4, NoRow}, rows)
	// Same-row entries keep insertion order.
	assert.Equal(t, KindPaymentExcluded, diags[2].Kind)
	assert.Equal(t, KindZeroExcluded, diags[3].Kind)
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Row: 2, Kind: KindCoercionError, Fields: []FieldName{FieldDate}, Message: `bad date "x"`}, `row 2: coercion-error(TransactionDate): bad date "x"`},
		{Diagnostic{Row: 1, Kind: KindPaymentExcluded, Message: "payment"}, "row 1: payment-excluded: payment"},
		{Diagnostic{Row: NoRow, Kind: KindBalanceMismatch, Message: "off by 1.00"}, "table: balance-mismatch: off by 1.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestDiagnosticKind_IsError(t *testing.T) {
	assert.True(t, KindCoercionError.IsError())
	assert.True(t, KindSchemaError.IsError())
	assert.True(t, KindBalanceMismatch.IsError())
	assert.False(t, KindPaymentExcluded.IsError())
	assert.False(t, KindZeroExcluded.IsError())
}

func TestNewRawTable_PadsShortRecords(t *testing.T) {
	tbl := NewRawTable([]string{"A", "B", "C"}, [][]string{
		{"1", "2", "3", "extra"},
		{"x"},
	})
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, RawValue("3"), tbl.Rows[0]["C"])
	assert.Equal(t, RawValue(""), tbl.Rows[1]["B"])
	assert.True(t, tbl.Rows[1]["C"].IsBlank())
}

func TestNewRawTable_RepeatedHeaderKeepsFirstColumn(t *testing.T) {
	tbl := NewRawTable([]string{"Amount", "Description", "Amount"}, [][]string{
		{"1.00", "Coffee", "99.00"},
		{"2.00"},
	})
	assert.Equal(t, RawValue("1.00"), tbl.Rows[0]["Amount"])
	assert.Equal(t, RawValue("2.00"), tbl.Rows[1]["Amount"])
	assert.Len(t, tbl.Rows[0], 2)
}

func TestRawValue_Trimmed(t *testing.T) {
	assert.Equal(t, "Grocery", RawValue("  Grocery \t").Trimmed())
	assert.True(t, RawValue(" \n ").IsBlank())
}

func TestFieldName_Type(t *testing.T) {
	assert.Equal(t, TypeDate, FieldDate.Type())
	assert.Equal(t, TypeAmount, FieldAmount.Type())
	assert.Equal(t, TypeText, FieldDescription.Type())
}
