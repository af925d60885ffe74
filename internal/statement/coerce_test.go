package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerline/internal/model"
)

var stdMap = ColumnMap{
	model.FieldDate:        "TransactionDate",
	model.FieldDescription: "Description",
	model.FieldAmount:      "Amount",
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string // YYYY-MM-DD, empty = invalid
	}{
		{"01/03/2024", "2024-03-01"},
		{"1/3/2024", "2024-03-01"},
		{"01/03/24", "2024-03-01"},
		{"31/12/2023", "2023-12-31"},
		{"03/25/2024", "2024-03-25"}, // day-first fails, month-first wins
		{"12/31/23", "2023-12-31"},
		{"15-06-2024", "2024-06-15"},
		{"15.06.2024", "2024-06-15"},
		{"2024-06-15", "2024-06-15"},
		{" 01/03/2024 ", "2024-03-01"},
		{"bad", ""},
		{"", ""},
		{"13/25/2024", ""},
		{"01/03/2024 extra", ""},
		{"2024/06/15", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseDate(tt.raw, DefaultDateLayouts)
			if tt.want == "" {
				assert.False(t, ok)
				assert.True(t, got.IsZero(), "no fallback date")
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseDate_LayoutOrderWins(t *testing.T) {
	got, ok := ParseDate("01/03/2024", []string{"1/2/2006", "2/1/2006"})
	require.True(t, ok)
	assert.Equal(t, "2024-01-03", got.Format("2006-01-02"))
}

func TestCoerce_AllValid(t *testing.T) {
	tbl := table(
		[3]string{"01/03/2024", " Grocery Store ", "1,200.00"},
		[3]string{"02/03/2024", "Refund", "(15.50)"},
	)
	txns, diags := Coerce(tbl, stdMap, DefaultConfig())
	assert.Empty(t, diags)
	require.Len(t, txns, 2)

	assert.Equal(t, 0, txns[0].Row)
	assert.True(t, txns[0].Date.Equal(date(2024, 3, 1)))
	assert.Equal(t, "Grocery Store", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(dec("1200.00")))

	assert.Equal(t, 1, txns[1].Row)
	assert.True(t, txns[1].Amount.Equal(dec("-15.50")))
}

func TestCoerce_DropsInvalidRowsAndReportsFields(t *testing.T) {
	tbl := table(
		[3]string{"bad", "X", "50.00"},
		[3]string{"01/03/2024", "Coffee", "4.50"},
		[3]string{"01/03/2024", "   ", "abc"},
		[3]string{"nope", "", ""},
		[3]string{"05/03/2024", "Books", "20"},
	)
	txns, diags := Coerce(tbl, stdMap, DefaultConfig())
	assert.Equal(t, []int{1, 4}, rows(txns))
	require.Len(t, diags, 3)

	assert.Equal(t, 0, diags[0].Row)
	assert.Equal(t, model.KindCoercionError, diags[0].Kind)
	assert.Equal(t, []model.FieldName{model.FieldDate}, diags[0].Fields)
	assert.Contains(t, diags[0].Message, `"bad"`)

	assert.Equal(t, 2, diags[1].Row)
	assert.Equal(t, []model.FieldName{model.FieldDescription, model.FieldAmount}, diags[1].Fields)

	assert.Equal(t, 3, diags[2].Row)
	assert.Equal(t, []model.FieldName{model.FieldDate, model.FieldDescription, model.FieldAmount}, diags[2].Fields)
}

func TestCoerce_NoZeroDefault(t *testing.T) {
	tbl := table([3]string{"01/03/2024", "Fee", ""})
	txns, diags := Coerce(tbl, stdMap, DefaultConfig())
	assert.Empty(t, txns)
	require.Len(t, diags, 1)
	assert.Equal(t, []model.FieldName{model.FieldAmount}, diags[0].Fields)
}

func TestCoerce_CustomLayouts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DateLayouts = []string{"02 Jan 2006"}
	tbl := table(
		[3]string{"05 Mar 2024", "Coffee", "4.50"},
		[3]string{"05/03/2024", "Coffee", "4.50"},
	)
	txns, diags := Coerce(tbl, stdMap, cfg)
	assert.Equal(t, []int{0}, rows(txns))
	assert.Len(t, diags, 1)
}

func TestCoerceRow_ReportsEveryFailingField(t *testing.T) {
	row := model.RawRow{"TransactionDate": "x", "Description": "  ", "Amount": "y"}
	_, errs := coerceRow(7, row, stdMap, DefaultDateLayouts)
	require.Len(t, errs, 3)

	assert.Equal(t, model.FieldDate, errs[0].Field)
	assert.Equal(t, "no matching date layout", errs[0].Reason)
	assert.Equal(t, model.FieldDescription, errs[1].Field)
	assert.Equal(t, "empty description", errs[1].Reason)
	assert.Equal(t, model.FieldAmount, errs[2].Field)
	assert.Equal(t, 7, errs[2].Row)
	assert.EqualError(t, errs[2], `row 7: parsing Amount "y": not an amount`)

	got, errs := coerceRow(2, model.RawRow{"TransactionDate": "01/03/2024", "Description": " ok ", "Amount": "(1.50)"}, stdMap, DefaultDateLayouts)
	require.Empty(t, errs)
	assert.Equal(t, 2, got.Row)
	assert.Equal(t, "ok", got.Description)
	assert.Equal(t, "-1.5", got.Amount.String())
	assert.Equal(t, date(2024, 3, 1), got.Date)
}
