package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerline/internal/model"
)

var stdColumns = []string{"TransactionDate", "Description", "Amount"}

// table builds a RawTable with the canonical columns from {date, desc, amount} triples.
func table(rows ...[3]string) model.RawTable {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{r[0], r[1], r[2]}
	}
	return model.NewRawTable(stdColumns, records)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(row int, desc, amt string) model.Transaction {
	return model.Transaction{Row: row, Date: date(2024, 3, 1), Description: desc, Amount: dec(amt)}
}

func rc(start, end string) model.ReconciliationContext {
	return model.ReconciliationContext{StartingBalance: dec(start), EndingBalance: dec(end)}
}

func rows(txns []model.Transaction) []int {
	out := make([]int, len(txns))
	for i, t := range txns {
		out[i] = t.Row
	}
	return out
}
