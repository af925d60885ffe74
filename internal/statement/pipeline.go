package statement

import (
	"errors"
	"log/slog"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/model"
)

// Pipeline runs the validation stages over one table at a time. It holds no
// mutable state, so one Pipeline may serve concurrent Run calls.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger stage progress is reported to.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline for cfg.
func New(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stats counts what happened to the rows of a table.
type Stats struct {
	Rows             int
	CoercionFailures int
	Payments         int
	ZeroAmounts      int
	Kept             int
}

// Removed is the number of input rows that did not survive.
func (s Stats) Removed() int { return s.Rows - s.Kept }

// Result is the outcome of processing one table.
type Result struct {
	Transactions   []model.Transaction
	Diagnostics    []model.Diagnostic
	Reconciliation Reconciliation
	Stats          Stats
}

// Reconciled reports whether the transactions bridge the stated balances.
func (r Result) Reconciled() bool { return r.Reconciliation.OK }

// Run validates, coerces, cleans and reconciles table. The returned error is
// non-nil only for a *SchemaError or an invalid Config, in which case Result
// carries no transactions. A balance mismatch is reported through Result.Reconciliation
// and a balance-mismatch diagnostic and does not discard transactions.
func (p *Pipeline) Run(table model.RawTable, rc model.ReconciliationContext) (Result, error) {
	res := Result{Stats: Stats{Rows: table.Len()}}

	if err := p.cfg.Validate(); err != nil {
		return res, err
	}

	cols, err := ValidateSchema(table, p.cfg.Columns)
	if err != nil {
		p.logger.Debug("schema validation failed", "error", err)
		res.Diagnostics = []model.Diagnostic{{
			Row:     model.NoRow,
			Kind:    model.KindSchemaError,
			Fields:  missingFields(err),
			Message: err.Error(),
		}}
		return res, err
	}
	p.logger.Debug("schema validated",
		"date_column", cols[model.FieldDate],
		"description_column", cols[model.FieldDescription],
		"amount_column", cols[model.FieldAmount],
		"rows", table.Len())

	typed, diags := Coerce(table, cols, p.cfg)
	res.Stats.CoercionFailures = len(diags)
	p.logger.Debug("rows coerced", "valid", len(typed), "invalid", len(diags))

	kept, removed, cleanDiags := Clean(typed, p.cfg)
	diags = append(diags, cleanDiags...)
	for _, d := range cleanDiags {
		switch d.Kind {
		case model.KindPaymentExcluded:
			res.Stats.Payments++
		case model.KindZeroExcluded:
			res.Stats.ZeroAmounts++
		}
	}
	p.logger.Debug("rows cleaned", "kept", len(kept), "removed", removed)

	rec := Reconcile(kept, rc)
	if !rec.OK {
		diags = append(diags, model.Diagnostic{
			Row:     model.NoRow,
			Kind:    model.KindBalanceMismatch,
			Message: rec.Err().Error(),
		})
		p.logger.Warn("balance mismatch",
			"expected", amount.Format(rec.Expected),
			"actual", amount.Format(rec.Actual),
			"delta", amount.Format(rec.Delta))
	}

	model.SortDiagnostics(diags)
	res.Transactions = kept
	res.Diagnostics = diags
	res.Reconciliation = rec
	res.Stats.Kept = len(kept)

	p.logger.Info("statement table processed",
		"rows", res.Stats.Rows,
		"kept", res.Stats.Kept,
		"removed", res.Stats.Removed(),
		"reconciled", rec.OK)
	return res, nil
}

func missingFields(err error) []model.FieldName {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Missing
	}
	return nil
}
