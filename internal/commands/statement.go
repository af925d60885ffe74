package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/config"
	"github.com/cleared-dev/ledgerline/internal/importer"
	"github.com/cleared-dev/ledgerline/internal/model"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

// balanceFlags are the --start/--end/--tolerance flags shared by process and check.
type balanceFlags struct {
	start     string
	end       string
	tolerance string
}

func (b *balanceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.start, "start", "", "statement starting balance")
	cmd.Flags().StringVar(&b.end, "end", "", "statement ending balance")
	cmd.Flags().StringVar(&b.tolerance, "tolerance", "", "allowed reconciliation delta (default from config)")
}

// loadConfig reads ledgerline.yaml from repoRoot, falling back to defaults
// when the file does not exist.
func loadConfig(repoRoot string) (*config.Config, error) {
	path := filepath.Join(repoRoot, config.FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// readStatement extracts the transaction table of one statement file.
func readStatement(reg *importer.Registry, path string, cols statement.Columns) (model.RawTable, error) {
	tables, err := reg.ReadFile(path)
	if err != nil {
		return model.RawTable{}, err
	}
	table, skipped, err := importer.Combine(tables, cols)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if skipped > 0 {
		slog.Default().Debug("skipped non-transaction tables", "file", filepath.Base(path), "skipped", skipped)
	}
	return table, nil
}

// resolveBalances decides the reconciliation context for table. Explicit
// flags win over balances.source; edge-rows balances remove the two balance
// rows from the returned table.
func resolveBalances(cfg *config.Config, b balanceFlags, table model.RawTable) (model.RawTable, model.ReconciliationContext, error) {
	tol, err := cfg.Tolerance()
	if err != nil {
		return table, model.ReconciliationContext{}, err
	}
	if b.tolerance != "" {
		var ok bool
		if tol, ok = amount.Parse(b.tolerance); !ok {
			return table, model.ReconciliationContext{}, fmt.Errorf("invalid --tolerance %q", b.tolerance)
		}
	}

	var rc model.ReconciliationContext
	switch {
	case b.start != "" || b.end != "":
		if b.start == "" || b.end == "" {
			return table, rc, errors.New("--start and --end must be given together")
		}
		start, ok := amount.Parse(b.start)
		if !ok {
			return table, rc, fmt.Errorf("invalid --start %q", b.start)
		}
		end, ok := amount.Parse(b.end)
		if !ok {
			return table, rc, fmt.Errorf("invalid --end %q", b.end)
		}
		rc = model.ReconciliationContext{StartingBalance: start, EndingBalance: end}
	case cfg.Balances.Source == config.BalancesEdgeRows:
		// A table without the required columns or rows has no balance rows to
		// read; hand it over whole so the pipeline reports the schema error.
		if _, err := statement.ValidateSchema(table, cfg.Pipeline().Columns); err != nil {
			break
		}
		table, rc, err = importer.EdgeBalances(table)
		if err != nil {
			return table, rc, err
		}
	default:
		return table, rc, errors.New("no balances: pass --start and --end or set balances.source: edge-rows")
	}

	rc.Tolerance = tol
	return table, rc, nil
}

// printSummary writes the one-line outcome for a processed statement.
func printSummary(w io.Writer, name string, res statement.Result) {
	status := "reconciled"
	if !res.Reconciled() {
		status = "NOT reconciled"
	}
	fmt.Fprintf(w, "%s: %d transactions, %d removed, %s (delta %s)\n",
		name, len(res.Transactions), res.Stats.Removed(), status, amount.Format(res.Reconciliation.Delta))
}

// printDiagnostics writes one line per diagnostic, errors marked apart from
// intentional exclusions.
func printDiagnostics(w io.Writer, diags []model.Diagnostic) {
	for _, d := range diags {
		level := "note "
		if d.Kind.IsError() {
			level = "error"
		}
		fmt.Fprintf(w, "  %s %s\n", level, d)
	}
}
