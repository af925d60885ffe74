package importer

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/model"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

// canonicalColumns is the header of a combined table.
var canonicalColumns = []string{
	string(model.FieldDate),
	string(model.FieldDescription),
	string(model.FieldAmount),
}

// Combine concatenates, in order, every table that carries the required
// columns and at least one row, projecting each onto the canonical
// TransactionDate/Description/Amount header. Statements usually spread one
// transaction list over several page tables next to summary tables; the
// latter are skipped and counted.
//
// When no table qualifies the first table is returned unchanged so the
// pipeline reports why it fails validation.
func Combine(tables []model.RawTable, cols statement.Columns) (model.RawTable, int, error) {
	if len(tables) == 0 {
		return model.RawTable{}, 0, errors.New("no tables found")
	}

	var records [][]string
	used := 0
	for _, t := range tables {
		m, err := statement.ValidateSchema(t, cols)
		if err != nil {
			continue
		}
		used++
		for _, row := range t.Rows {
			records = append(records, []string{
				string(row[m[model.FieldDate]]),
				string(row[m[model.FieldDescription]]),
				string(row[m[model.FieldAmount]]),
			})
		}
	}
	if used == 0 {
		return tables[0], len(tables) - 1, nil
	}
	return model.NewRawTable(canonicalColumns, records), len(tables) - used, nil
}

// EdgeBalances reads the statement balances from the first and last data
// rows of a combined table, where statements print the previous and new
// balance, and returns the table without those two rows.
func EdgeBalances(table model.RawTable) (model.RawTable, model.ReconciliationContext, error) {
	if table.Len() < 2 {
		return table, model.ReconciliationContext{}, fmt.Errorf("need at least 2 rows for edge balances, got %d", table.Len())
	}
	col := string(model.FieldAmount)
	first := table.Rows[0][col]
	last := table.Rows[table.Len()-1][col]

	start, ok := amount.Parse(string(first))
	if !ok {
		return table, model.ReconciliationContext{}, fmt.Errorf("parsing starting balance %q", first)
	}
	end, ok := amount.Parse(string(last))
	if !ok {
		return table, model.ReconciliationContext{}, fmt.Errorf("parsing ending balance %q", last)
	}

	inner := model.RawTable{
		Columns: table.Columns,
		Rows:    table.Rows[1 : table.Len()-1],
	}
	return inner, model.ReconciliationContext{StartingBalance: start, EndingBalance: end}, nil
}
