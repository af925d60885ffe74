package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a coerced statement row.
type Transaction struct {
	Row         int // original 0-based data row index
	Date        time.Time
	Description string
	Amount      decimal.Decimal // signed, exact
}

// ReconciliationContext carries the balances a statement reports. The caller
// extracts these; the engine only compares against them.
type ReconciliationContext struct {
	StartingBalance decimal.Decimal
	EndingBalance   decimal.Decimal
	Tolerance       decimal.Decimal // zero = exact match
}
