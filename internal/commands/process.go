package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerline/internal/config"
	"github.com/cleared-dev/ledgerline/internal/export"
	"github.com/cleared-dev/ledgerline/internal/gitops"
	"github.com/cleared-dev/ledgerline/internal/importer"
	"github.com/cleared-dev/ledgerline/internal/runlog"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

func newProcessCommand() *cobra.Command {
	var (
		repoDir  string
		dryRun   bool
		balances balanceFlags
	)

	cmd := &cobra.Command{
		Use:   "process [files...]",
		Short: "Validate statements and write ledger CSVs and reports",
		Long: `Process statement files. With no arguments every supported file in
import/ is processed and moved to import/processed/ on success.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runProcess(cmd.OutOrStdout(), absDir, args, balances, dryRun)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "repository directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate without writing files")
	balances.register(cmd)

	return cmd
}

// source is one statement file to process.
type source struct {
	name    string
	path    string
	scanned bool // found in import/ and moved once processed
}

func runProcess(out io.Writer, repoRoot string, args []string, b balanceFlags, dryRun bool) error {
	cfg, err := loadConfig(repoRoot)
	if err != nil {
		return err
	}

	reg := importer.DefaultRegistry()
	sources, err := collectSources(reg, repoRoot, args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(out, "No statements to process.")
		return nil
	}

	run := &processRun{
		out:      out,
		repoRoot: repoRoot,
		cfg:      cfg,
		reg:      reg,
		pipeline: statement.New(cfg.Pipeline(), statement.WithLogger(slog.Default())),
		balances: b,
		dryRun:   dryRun,
	}

	var failed int
	var runErr error
	for _, src := range sources {
		ok, err := run.process(src)
		if err != nil {
			runErr = fmt.Errorf("%s: %w", src.name, err)
			break
		}
		if !ok {
			failed++
		}
	}

	// Whatever was written before a stop is still committed.
	if run.written > 0 && cfg.Git.AutoCommit && gitops.IsRepo(repoRoot) {
		if err := commitOutputs(out, repoRoot, cfg, run.written); err != nil {
			return errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(sources))
	}
	return nil
}

// processRun carries the state shared by the statements of one process call.
type processRun struct {
	out      io.Writer
	repoRoot string
	cfg      *config.Config
	reg      *importer.Registry
	pipeline *statement.Pipeline
	balances balanceFlags
	dryRun   bool
	written  int
}

// process handles one statement. ok is false when the statement could not be
// read, had no usable balances, or failed schema validation; those are
// reported and the batch goes on. A returned error stops the batch.
func (r *processRun) process(src source) (ok bool, err error) {
	logger := slog.Default().With("file", src.name)

	table, err := readStatement(r.reg, src.path, r.cfg.Pipeline().Columns)
	if err != nil {
		fmt.Fprintf(r.out, "%s: %v\n", src.name, err)
		logger.Warn("statement skipped", "error", err)
		return false, nil
	}
	table, rc, err := resolveBalances(r.cfg, r.balances, table)
	if err != nil {
		fmt.Fprintf(r.out, "%s: %v\n", src.name, err)
		logger.Warn("statement skipped", "error", err)
		return false, nil
	}

	res, runErr := r.pipeline.Run(table, rc)
	if runErr != nil {
		var se *statement.SchemaError
		if !errors.As(runErr, &se) {
			return false, runErr
		}
		fmt.Fprintf(r.out, "%s: %v\n", src.name, runErr)
	} else {
		printSummary(r.out, src.name, res)
	}

	if r.dryRun {
		return runErr == nil, nil
	}

	runID := uuid.New().String()
	now := time.Now()
	rep := export.NewReport(runID, src.name, now, res)
	opts := export.Options{FlipSign: r.cfg.Export.FlipSign}
	paths, err := export.WriteFiles(filepath.Join(r.repoRoot, r.cfg.Export.Dir), rep, res, opts)
	if err != nil {
		return false, err
	}
	r.written++
	logger.Info("statement written", "run_id", runID, "ledger", paths.Ledger, "report", paths.Report)

	entry := runlog.Entry{
		Timestamp:    now,
		RunID:        runID,
		Source:       src.name,
		Transactions: len(res.Transactions),
		Removed:      res.Stats.Removed(),
		Reconciled:   res.Reconciled(),
		Delta:        rep.Reconciliation.Delta,
	}
	if err := runlog.Append(r.repoRoot, []runlog.Entry{entry}); err != nil {
		return false, fmt.Errorf("writing run log: %w", err)
	}

	if src.scanned && runErr == nil {
		if err := importer.MarkProcessed(r.repoRoot, src.name); err != nil {
			return false, err
		}
	}
	return runErr == nil, nil
}

func collectSources(reg *importer.Registry, repoRoot string, args []string) ([]source, error) {
	if len(args) > 0 {
		sources := make([]source, 0, len(args))
		for _, a := range args {
			p, err := filepath.Abs(a)
			if err != nil {
				return nil, fmt.Errorf("resolving path: %w", err)
			}
			sources = append(sources, source{name: filepath.Base(p), path: p})
		}
		return sources, nil
	}

	files, err := reg.Scan(repoRoot)
	if err != nil {
		return nil, err
	}
	sources := make([]source, 0, len(files))
	for _, f := range files {
		sources = append(sources, source{name: f.Name, path: f.Path, scanned: true})
	}
	return sources, nil
}

func commitOutputs(out io.Writer, repoRoot string, cfg *config.Config, n int) error {
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	msg := fmt.Sprintf("process: %d statement(s)", n)
	var paths []string
	for _, p := range []string{cfg.Export.Dir, "logs", "import"} {
		if _, err := os.Stat(filepath.Join(repoRoot, p)); err == nil {
			paths = append(paths, p)
		}
	}
	hash, err := gitops.Commit(repoRoot, msg, author, paths...)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing outputs: %w", err)
	}
	fmt.Fprintf(out, "Committed %s\n", hash)
	return nil
}
