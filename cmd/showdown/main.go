package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/showdown/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"showdown.hcl" help:"HCL configuration file (defaults apply when missing)"`
	EnvFile  string `default:".env" help:"Environment file loaded before SHOWDOWN_* overrides"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Classify ClassifyCmd      `cmd:"" help:"Classify exactly five cards"`
	Best     BestCmd          `cmd:"" help:"Find the best five-card hand in a pool of 5 to 7 cards"`
	Compare  CompareCmd       `cmd:"" help:"Compare hands at showdown and report the winners"`
	Deal     DealCmd          `cmd:"" help:"Deal a Hold'em round from a shuffled deck and settle it"`
	Odds     OddsCmd          `cmd:"" help:"Estimate win and tie rates by dealing out the board"`
	Verify   VerifyCmd        `cmd:"" help:"Crosscheck hand ordering against an independent evaluator"`
}

// Runtime carries the process resources commands write to and read time from.
type Runtime struct {
	Out   io.Writer
	Err   io.Writer
	Clock quartz.Clock
}

// setup loads configuration and builds the logger for a command.
func (rt *Runtime) setup(g *Globals) (*config.Config, *log.Logger, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if err := config.LoadEnvFiles(g.EnvFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, newLogger(rt.Err, cfg.Log.Level), nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.New(w)
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("showdown"),
		kong.Description("Poker hand evaluation, showdowns and dealing"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	rt := &Runtime{Out: os.Stdout, Err: os.Stderr, Clock: quartz.NewReal()}
	err := ctx.Run(&cli.Globals, rt)
	ctx.FatalIfErrorf(err)
}
