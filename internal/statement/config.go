// Package statement validates and normalizes extracted bank-statement tables
// into typed, reconciled transactions.
//
// A table goes through four stages in a fixed order: schema validation,
// per-row type coercion, cleaning (payment and optional zero-amount
// exclusion), and balance reconciliation. Only schema validation aborts the
// table; the other stages drop rows or flag the table and record a
// model.Diagnostic for every decision.
package statement

import (
	"errors"
	"strings"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// DefaultPaymentPrefix is the description prefix of statement payment lines.
const DefaultPaymentPrefix = "Payment"

// DefaultDateLayouts are tried in order; day-first layouts win for ambiguous
// dates such as 01/03/2024.
var DefaultDateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"1/2/2006",
	"1/2/06",
	"2-1-2006",
	"2-1-06",
	"2.1.2006",
	"2.1.06",
	"2006-01-02",
}

// Columns lists extra header aliases per required field. The canonical field
// name always matches and does not need to be listed.
type Columns map[model.FieldName][]string

// names returns the canonical name followed by the aliases for f.
func (c Columns) names(f model.FieldName) []string {
	return append([]string{string(f)}, c[f]...)
}

// Config controls the engine. It is passed explicitly to New; nothing is read
// from global state.
type Config struct {
	Columns         Columns
	DateLayouts     []string
	PaymentPrefix   string // empty disables the payment filter
	DropZeroAmounts bool
}

// DefaultConfig returns the engine defaults: canonical headers only, the
// default date layouts, the "Payment" filter, and zero-amount rows kept.
func DefaultConfig() Config {
	return Config{
		Columns:       Columns{},
		DateLayouts:   append([]string(nil), DefaultDateLayouts...),
		PaymentPrefix: DefaultPaymentPrefix,
	}
}

// Validate checks that the configuration can process a table.
func (c Config) Validate() error {
	if len(c.DateLayouts) == 0 {
		return errors.New("no date layouts configured")
	}
	for f, aliases := range c.Columns {
		for _, a := range aliases {
			if strings.TrimSpace(a) == "" {
				return errors.New("empty column alias for " + string(f))
			}
		}
	}
	return nil
}
