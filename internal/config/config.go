package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerline/internal/model"
	"github.com/cleared-dev/ledgerline/internal/statement"
)

// FileName is the project configuration file at the repository root.
const FileName = "ledgerline.yaml"

// Balance sources.
const (
	BalancesFlags    = "flags"     // --start/--end on the command line
	BalancesEdgeRows = "edge-rows" // first and last data rows of the table
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Statement StatementConfig `yaml:"statement"`
	Balances  BalancesConfig  `yaml:"balances"`
	Export    ExportConfig    `yaml:"export"`
	Git       GitConfig       `yaml:"git"`
}

// StatementConfig controls the validation engine.
type StatementConfig struct {
	Columns         ColumnsConfig `yaml:"columns"`
	DateLayouts     []string      `yaml:"date_layouts"`
	PaymentPrefix   string        `yaml:"payment_prefix"`
	DropZeroAmounts bool          `yaml:"drop_zero_amounts"`
}

// ColumnsConfig lists header aliases for each required column.
type ColumnsConfig struct {
	TransactionDate []string `yaml:"transaction_date,omitempty"`
	Description     []string `yaml:"description,omitempty"`
	Amount          []string `yaml:"amount,omitempty"`
}

// BalancesConfig says where statement balances come from.
type BalancesConfig struct {
	Source    string `yaml:"source"`    // "flags" or "edge-rows"
	Tolerance string `yaml:"tolerance"` // decimal, e.g. "0.00"
}

// ExportConfig controls output files.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	FlipSign bool   `yaml:"flip_sign"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ledgerline.yaml file from disk. Missing keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	engine := statement.DefaultConfig()
	return &Config{
		Statement: StatementConfig{
			DateLayouts:   engine.DateLayouts,
			PaymentPrefix: engine.PaymentPrefix,
		},
		Balances: BalancesConfig{
			Source:    BalancesFlags,
			Tolerance: "0.00",
		},
		Export: ExportConfig{
			Dir: "output",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Ledgerline",
			AuthorEmail: "ledgerline@cleared.dev",
		},
	}
}

// Validate checks values that YAML decoding cannot.
func (c *Config) Validate() error {
	switch c.Balances.Source {
	case BalancesFlags, BalancesEdgeRows:
	default:
		return fmt.Errorf("balances.source must be %q or %q, got %q", BalancesFlags, BalancesEdgeRows, c.Balances.Source)
	}
	if _, err := c.Tolerance(); err != nil {
		return err
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is empty")
	}
	return c.Pipeline().Validate()
}

// Tolerance parses balances.tolerance; empty means zero.
func (c *Config) Tolerance() (decimal.Decimal, error) {
	if c.Balances.Tolerance == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(c.Balances.Tolerance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing balances.tolerance %q: %w", c.Balances.Tolerance, err)
	}
	return d, nil
}

// Pipeline converts the statement section into the engine configuration.
func (c *Config) Pipeline() statement.Config {
	cols := statement.Columns{}
	if len(c.Statement.Columns.TransactionDate) > 0 {
		cols[model.FieldDate] = c.Statement.Columns.TransactionDate
	}
	if len(c.Statement.Columns.Description) > 0 {
		cols[model.FieldDescription] = c.Statement.Columns.Description
	}
	if len(c.Statement.Columns.Amount) > 0 {
		cols[model.FieldAmount] = c.Statement.Columns.Amount
	}
	return statement.Config{
		Columns:         cols,
		DateLayouts:     c.Statement.DateLayouts,
		PaymentPrefix:   c.Statement.PaymentPrefix,
		DropZeroAmounts: c.Statement.DropZeroAmounts,
	}
}
