package statement

import (
	"strings"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/model"
)

// IsPayment reports whether txn is a statement payment line: a negative
// amount whose trimmed description starts with prefix, ignoring case. An
// empty prefix never matches.
func IsPayment(txn model.Transaction, prefix string) bool {
	if prefix == "" || !txn.Amount.IsNegative() {
		return false
	}
	desc := strings.ToLower(strings.TrimSpace(txn.Description))
	return strings.HasPrefix(desc, strings.ToLower(prefix))
}

// Clean removes payment lines and, when cfg.DropZeroAmounts is set,
// zero-amount rows. Every removal is recorded with its own diagnostic kind.
// Kept rows stay in input order.
func Clean(txns []model.Transaction, cfg Config) (kept []model.Transaction, removed int, diags []model.Diagnostic) {
	kept = make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		switch {
		case IsPayment(txn, cfg.PaymentPrefix):
			diags = append(diags, model.Diagnostic{
				Row:     txn.Row,
				Kind:    model.KindPaymentExcluded,
				Message: "payment line " + quote(txn.Description) + " " + amount.Format(txn.Amount) + " excluded",
			})
		case cfg.DropZeroAmounts && txn.Amount.IsZero():
			diags = append(diags, model.Diagnostic{
				Row:     txn.Row,
				Kind:    model.KindZeroExcluded,
				Message: "zero-amount row " + quote(txn.Description) + " excluded",
			})
		default:
			kept = append(kept, txn)
			continue
		}
		removed++
	}
	return kept, removed, diags
}
