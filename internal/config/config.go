// Package config loads the showdown CLI configuration.
//
// Settings come from an HCL file, then from the environment (optionally
// seeded from a .env file), and finally from command line flags applied by
// the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/showdown/internal/round"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHOWDOWN_"

// Config represents the complete configuration
type Config struct {
	Log    LogSettings
	Table  TableSettings
	Verify VerifySettings
}

// LogSettings controls logging output.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// TableSettings controls dealt rounds.
type TableSettings struct {
	Players int    `hcl:"players,optional"`
	Seed    *int64 `hcl:"seed,optional"`
}

// VerifySettings controls the crosscheck run.
type VerifySettings struct {
	Deals   int    `hcl:"deals,optional"`
	Workers int    `hcl:"workers,optional"`
	Report  string `hcl:"report,optional"`
}

// file mirrors the HCL layout; every block is optional.
type file struct {
	Log    *LogSettings    `hcl:"log,block"`
	Table  *TableSettings  `hcl:"table,block"`
	Verify *VerifySettings `hcl:"verify,block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogSettings{Level: "info"},
		Table:  TableSettings{Players: 4},
		Verify: VerifySettings{Deals: 100000, Workers: 4},
	}
}

// Load reads filename, falling back to defaults when it does not exist, and
// then applies environment overrides.
func Load(filename string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from an HCL file. A missing file yields the defaults.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if raw.Log != nil && raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Table != nil {
		if raw.Table.Players != 0 {
			cfg.Table.Players = raw.Table.Players
		}
		cfg.Table.Seed = raw.Table.Seed
	}
	if raw.Verify != nil {
		if raw.Verify.Deals != 0 {
			cfg.Verify.Deals = raw.Verify.Deals
		}
		if raw.Verify.Workers != 0 {
			cfg.Verify.Workers = raw.Verify.Workers
		}
		cfg.Verify.Report = raw.Verify.Report
	}
	return cfg, nil
}

// LoadEnvFiles loads .env style files into the process environment. Missing
// files are ignored and variables already set are never overwritten.
func LoadEnvFiles(filenames ...string) error {
	for _, name := range filenames {
		if name == "" {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("error loading %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from SHOWDOWN_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if err := envInt("PLAYERS", &c.Table.Players); err != nil {
		return err
	}
	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED %q: %w", EnvPrefix, v, err)
		}
		c.Table.Seed = &seed
	}
	if err := envInt("VERIFY_DEALS", &c.Verify.Deals); err != nil {
		return err
	}
	if err := envInt("VERIFY_WORKERS", &c.Verify.Workers); err != nil {
		return err
	}
	if v, ok := lookup("VERIFY_REPORT"); ok {
		c.Verify.Report = v
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if err := (round.Config{Players: c.Table.Players}).Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if c.Verify.Deals <= 0 {
		return fmt.Errorf("verify: deals must be positive, got %d", c.Verify.Deals)
	}
	if c.Verify.Workers <= 0 {
		return fmt.Errorf("verify: workers must be positive, got %d", c.Verify.Workers)
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envInt(key string, dst *int) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
	}
	*dst = n
	return nil
}
