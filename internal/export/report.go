package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerline/internal/amount"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

// Report summarizes one processed statement.
type Report struct {
	RunID          string               `yaml:"run_id"`
	Source         string               `yaml:"source"`
	ProcessedAt    time.Time            `yaml:"processed_at"`
	Rows           int                  `yaml:"rows"`
	Transactions   int                  `yaml:"transactions"`
	Removed        RemovedCounts        `yaml:"removed"`
	Reconciliation ReconciliationReport `yaml:"reconciliation"`
	Diagnostics    []DiagnosticReport   `yaml:"diagnostics,omitempty"`
}

// RemovedCounts breaks dropped rows down by reason.
type RemovedCounts struct {
	Coercion   int `yaml:"coercion"`
	Payments   int `yaml:"payments"`
	ZeroAmount int `yaml:"zero_amount"`
}

// ReconciliationReport is the balance verdict with amounts as fixed strings.
type ReconciliationReport struct {
	OK        bool   `yaml:"ok"`
	Starting  string `yaml:"starting_balance"`
	Sum       string `yaml:"sum"`
	Expected  string `yaml:"expected_ending_balance"`
	Actual    string `yaml:"actual_ending_balance"`
	Delta     string `yaml:"delta"`
	Tolerance string `yaml:"tolerance"`
}

// DiagnosticReport is one diagnostic. Row is -1 for table-level entries.
type DiagnosticReport struct {
	Row     int    `yaml:"row"`
	Kind    string `yaml:"kind"`
	Error   bool   `yaml:"error"` // false for intentional exclusions
	Fields  string `yaml:"fields,omitempty"`
	Message string `yaml:"message"`
}

// NewReport builds the report for res.
func NewReport(runID, source string, processedAt time.Time, res statement.Result) Report {
	rec := res.Reconciliation
	rep := Report{
		RunID:        runID,
		Source:       source,
		ProcessedAt:  processedAt.UTC(),
		Rows:         res.Stats.Rows,
		Transactions: len(res.Transactions),
		Removed: RemovedCounts{
			Coercion:   res.Stats.CoercionFailures,
			Payments:   res.Stats.Payments,
			ZeroAmount: res.Stats.ZeroAmounts,
		},
		Reconciliation: ReconciliationReport{
			OK:        rec.OK,
			Starting:  amount.Format(rec.Starting),
			Sum:       amount.Format(rec.Sum),
			Expected:  amount.Format(rec.Expected),
			Actual:    amount.Format(rec.Actual),
			Delta:     amount.Format(rec.Delta),
			Tolerance: amount.Format(rec.Tolerance),
		},
	}
	for _, d := range res.Diagnostics {
		fields := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = string(f)
		}
		rep.Diagnostics = append(rep.Diagnostics, DiagnosticReport{
			Row:     d.Row,
			Kind:    string(d.Kind),
			Error:   d.Kind.IsError(),
			Fields:  strings.Join(fields, ","),
			Message: d.Message,
		})
	}
	return rep
}

// WriteReport encodes rep as YAML.
func WriteReport(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// ReadReport decodes a YAML report.
func ReadReport(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decoding report: %w", err)
	}
	return rep, nil
}

// Paths are the files written for one statement.
type Paths struct {
	Ledger string
	Report string
}

// PathsFor returns the output paths for a statement file name in dir.
func PathsFor(dir, source string) Paths {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return Paths{
		Ledger: filepath.Join(dir, base+".csv"),
		Report: filepath.Join(dir, base+".report.yaml"),
	}
}

// WriteFiles writes the ledger CSV and report for res into dir. The ledger
// is only written when the result carries transactions.
func WriteFiles(dir string, rep Report, res statement.Result, opts Options) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output dir: %w", err)
	}
	p := PathsFor(dir, rep.Source)

	if len(res.Transactions) > 0 {
		if err := writeFile(p.Ledger, func(w io.Writer) error {
			return WriteTransactions(w, res.Transactions, opts)
		}); err != nil {
			return Paths{}, err
		}
	} else {
		p.Ledger = ""
	}

	if err := writeFile(p.Report, func(w io.Writer) error {
		return WriteReport(w, rep)
	}); err != nil {
		return Paths{}, err
	}
	return p, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}
