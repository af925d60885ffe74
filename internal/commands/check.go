package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerline/internal/importer"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

// errNotReconciled makes check exit non-zero on a balance mismatch.
var errNotReconciled = errors.New("statement does not reconcile")

func newCheckCommand() *cobra.Command {
	var (
		repoDir  string
		balances balanceFlags
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate one statement and print its diagnostics without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runCheck(cmd.OutOrStdout(), absDir, args[0], balances)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory holding ledgerline.yaml")
	balances.register(cmd)

	return cmd
}

func runCheck(out io.Writer, repoRoot, path string, b balanceFlags) error {
	cfg, err := loadConfig(repoRoot)
	if err != nil {
		return err
	}
	pc := cfg.Pipeline()
	name := filepath.Base(path)

	table, err := readStatement(importer.DefaultRegistry(), path, pc.Columns)
	if err != nil {
		return err
	}
	table, rc, err := resolveBalances(cfg, b, table)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	res, err := statement.New(pc, statement.WithLogger(slog.Default())).Run(table, rc)
	if err != nil {
		printDiagnostics(out, res.Diagnostics)
		return err
	}

	printSummary(out, name, res)
	printDiagnostics(out, res.Diagnostics)
	if !res.Reconciled() {
		return errNotReconciled
	}
	return nil
}
