package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerline/internal/importer"
	"github.com/cleared-dev/ledgerline/internal/model"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scenario() model.RawTable {
	return model.NewRawTable(strings.Split(Header, ","), [][]string{
		{"01/03/2024", "Grocery Store", "1,200.00"},
		{"02/03/2024", "Payment - Thank You", "(5,000.00)"},
		{"bad", "X", "50.00"},
		{"04/03/2024", "Refund, partial", "(12.345)"},
	})
}

var scenarioBalances = model.ReconciliationContext{
	StartingBalance: dec("10000.00"),
	EndingBalance:   dec("11187.655"),
}

func TestWriteTransactions(t *testing.T) {
	txns := []model.Transaction{
		{Row: 0, Date: date(2024, 3, 1), Description: "Grocery Store", Amount: dec("1200")},
		{Row: 3, Date: date(2024, 3, 4), Description: "Refund, partial", Amount: dec("-12.345")},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns, Options{}))

	want := "TransactionDate,Description,Amount\n" +
		"2024-03-01,Grocery Store,1200.00\n" +
		"2024-03-04,\"Refund, partial\",-12.345\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTransactions_FlipSign(t *testing.T) {
	txns := []model.Transaction{
		{Date: date(2024, 3, 1), Description: "Cafe", Amount: dec("65.50")},
		{Date: date(2024, 3, 2), Description: "Refund", Amount: dec("-15.50")},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns, Options{FlipSign: true}))
	assert.Contains(t, buf.String(), "2024-03-01,Cafe,-65.50\n")
	assert.Contains(t, buf.String(), "2024-03-02,Refund,15.50\n")
}

func TestWriteTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil, Options{}))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestPipelineIdempotent(t *testing.T) {
	p := statement.New(statement.DefaultConfig())
	first, err := p.Run(scenario(), scenarioBalances)
	require.NoError(t, err)
	require.True(t, first.Reconciled())
	require.Len(t, first.Transactions, 2)

	// Feed the cleaned output back in as a fresh table.
	again := model.ReconciliationContext{
		StartingBalance: scenarioBalances.StartingBalance,
		EndingBalance:   first.Reconciliation.Actual,
	}
	second, err := p.Run(ToRawTable(first.Transactions, Options{}), again)
	require.NoError(t, err)

	require.Len(t, second.Transactions, len(first.Transactions))
	for i := range first.Transactions {
		a, b := first.Transactions[i], second.Transactions[i]
		assert.True(t, a.Date.Equal(b.Date))
		assert.Equal(t, a.Description, b.Description)
		assert.True(t, a.Amount.Equal(b.Amount))
	}
	assert.Empty(t, second.Diagnostics)
	assert.True(t, second.Reconciled())
	assert.True(t, second.Reconciliation.Actual.Equal(first.Reconciliation.Actual))

	// Chained statement: the next period opens at the previous actual.
	chained := model.ReconciliationContext{
		StartingBalance: first.Reconciliation.Actual,
		EndingBalance:   first.Reconciliation.Actual.Add(first.Reconciliation.Sum),
	}
	third, err := p.Run(ToRawTable(first.Transactions, Options{}), chained)
	require.NoError(t, err)
	assert.True(t, third.Reconciled())
}

func TestExportFileRoundTrip(t *testing.T) {
	p := statement.New(statement.DefaultConfig())
	res, err := p.Run(scenario(), scenarioBalances)
	require.NoError(t, err)

	dir := t.TempDir()
	rep := NewReport("run-1", "march.xlsx", time.Now(), res)
	paths, err := WriteFiles(dir, rep, res, Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "march.csv"), paths.Ledger)

	tables, err := importer.DefaultRegistry().ReadFile(paths.Ledger)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	again, err := p.Run(tables[0], model.ReconciliationContext{
		StartingBalance: scenarioBalances.StartingBalance,
		EndingBalance:   res.Reconciliation.Actual,
	})
	require.NoError(t, err)
	assert.Len(t, again.Transactions, len(res.Transactions))
	assert.True(t, again.Reconciled())
}

func TestNewReport(t *testing.T) {
	res, err := statement.New(statement.DefaultConfig()).Run(scenario(), model.ReconciliationContext{
		StartingBalance: dec("10000.00"),
		EndingBalance:   dec("11200.00"),
	})
	require.NoError(t, err)

	at := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	rep := NewReport("abc", "march.csv", at, res)
	assert.Equal(t, 4, rep.Rows)
	assert.Equal(t, 2, rep.Transactions)
	assert.Equal(t, RemovedCounts{Coercion: 1, Payments: 1}, rep.Removed)
	assert.False(t, rep.Reconciliation.OK)
	assert.Equal(t, "11187.655", rep.Reconciliation.Actual)
	assert.Equal(t, "-12.345", rep.Reconciliation.Delta)
	require.Len(t, rep.Diagnostics, 3)
	assert.Equal(t, "payment-excluded", rep.Diagnostics[0].Kind)
	assert.False(t, rep.Diagnostics[0].Error, "exclusions are not errors")
	assert.True(t, rep.Diagnostics[1].Error)
	assert.True(t, rep.Diagnostics[2].Error)
	assert.Equal(t, "TransactionDate", rep.Diagnostics[1].Fields)
	assert.Equal(t, -1, rep.Diagnostics[2].Row)
	assert.Equal(t, "balance-mismatch", rep.Diagnostics[2].Kind)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rep))
	assert.Contains(t, buf.String(), "run_id: abc")
	assert.Contains(t, buf.String(), "actual_ending_balance: \"11187.655\"")

	got, err := ReadReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, rep, got)
}

func TestWriteFiles_SchemaFailureWritesReportOnly(t *testing.T) {
	tbl := model.NewRawTable([]string{"Date", "Description"}, [][]string{{"01/03/2024", "x"}})
	res, err := statement.New(statement.DefaultConfig()).Run(tbl, model.ReconciliationContext{})
	require.Error(t, err)

	dir := t.TempDir()
	paths, err := WriteFiles(filepath.Join(dir, "out"), NewReport("r", "bad.csv", time.Now(), res), res, Options{})
	require.NoError(t, err)
	assert.Empty(t, paths.Ledger)

	_, err = os.Stat(filepath.Join(dir, "out", "bad.csv"))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(paths.Report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "schema-error")
}

func TestPathsFor(t *testing.T) {
	p := PathsFor("/out", "/in/import/Statement March.xlsx")
	assert.Equal(t, "/out/Statement March.csv", p.Ledger)
	assert.Equal(t, "/out/Statement March.report.yaml", p.Report)
}
