// Package export writes processed statements: the ledger CSV and a YAML run
// report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/model"
)

// Header is the CSV header of an exported ledger. It uses the canonical
// field names so an export can be fed back through the pipeline.
const Header = "TransactionDate,Description,Amount"

const (
	numFields  = 3
	dateFormat = "2006-01-02"
	colDate    = 0
	colDesc    = 1
	colAmount  = 2
)

// Options controls how transactions are rendered.
type Options struct {
	// FlipSign negates every amount, for statements that print charges as
	// positive numbers while the ledger records them as outflows.
	FlipSign bool
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction, opts Options) []string {
	amt := txn.Amount
	if opts.FlipSign {
		amt = amt.Neg()
	}
	row := make([]string, numFields)
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = amount.Format(amt)
	return row
}

// WriteTransactions writes txns to w, header first.
func WriteTransactions(w io.Writer, txns []model.Transaction, opts Options) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn, opts)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToRawTable renders txns as the RawTable an export file would read back as.
func ToRawTable(txns []model.Transaction, opts Options) model.RawTable {
	records := make([][]string, len(txns))
	for i, txn := range txns {
		records[i] = MarshalTransaction(txn, opts)
	}
	return model.NewRawTable(strings.Split(Header, ","), records)
}
