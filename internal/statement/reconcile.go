package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerline/internal/model"
)

// Reconciliation is the verdict of bridging the starting balance to the
// ending balance with a set of transactions.
type Reconciliation struct {
	Starting  decimal.Decimal
	Sum       decimal.Decimal
	Expected  decimal.Decimal // stated ending balance
	Actual    decimal.Decimal // Starting + Sum
	Delta     decimal.Decimal // Actual - Expected
	Tolerance decimal.Decimal
	OK        bool
}

// Reconcile sums txns onto rc.StartingBalance and compares the result with
// rc.EndingBalance. The comparison is exact decimal arithmetic; a negative
// tolerance is treated as its absolute value.
//
// Balances are taken as given. When the cleaner excluded payment lines the
// caller must supply balances that exclude them too, otherwise the delta
// shows the filtered payments.
func Reconcile(txns []model.Transaction, rc model.ReconciliationContext) Reconciliation {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	actual := rc.StartingBalance.Add(sum)
	delta := actual.Sub(rc.EndingBalance)
	tol := rc.Tolerance.Abs()
	return Reconciliation{
		Starting:  rc.StartingBalance,
		Sum:       sum,
		Expected:  rc.EndingBalance,
		Actual:    actual,
		Delta:     delta,
		Tolerance: tol,
		OK:        delta.Abs().LessThanOrEqual(tol),
	}
}

// Err returns a *BalanceError when the reconciliation failed, nil otherwise.
func (r Reconciliation) Err() error {
	if r.OK {
		return nil
	}
	return &BalanceError{Expected: r.Expected, Actual: r.Actual, Delta: r.Delta}
}
