package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/lox/showdown/internal/crosscheck"
	"github.com/lox/showdown/internal/fileutil"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/statistics"
)

type VerifyCmd struct {
	Deals   int    `short:"d" help:"Number of heads-up deals (overrides verify.deals)"`
	Workers int    `short:"w" help:"Worker goroutines (overrides verify.workers)"`
	Seed    *int64 `help:"Random seed for reproducible runs (overrides table.seed)"`
	Report  string `short:"o" help:"Write a JSON report to this file (overrides verify.report)"`
}

func (c *VerifyCmd) Run(g *Globals, rt *Runtime) error {
	cfg, logger, err := rt.setup(g)
	if err != nil {
		return err
	}

	opts := crosscheck.Options{
		Deals:   cfg.Verify.Deals,
		Workers: cfg.Verify.Workers,
		Logger:  logger,
	}
	if c.Deals != 0 {
		opts.Deals = c.Deals
	}
	if c.Workers != 0 {
		opts.Workers = c.Workers
	}
	seed := cfg.Table.Seed
	if c.Seed != nil {
		seed = c.Seed
	}
	opts.Seed = randutil.Seed(seed, rt.Clock)
	reportPath := cfg.Verify.Report
	if c.Report != "" {
		reportPath = c.Report
	}

	logger.Info("Starting crosscheck", "deals", opts.Deals, "workers", opts.Workers, "seed", opts.Seed)
	start := rt.Clock.Now()
	report, err := crosscheck.Run(context.Background(), opts)
	if err != nil {
		return err
	}
	duration := rt.Clock.Now().Sub(start)

	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("deals"), report.Deals)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("compared"), report.Compared)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("skipped (wheel)"), report.Skipped)
	mismatched := winStyle.Render("0")
	if !report.OK() {
		mismatched = percentStyle.Render(fmt.Sprint(report.Mismatched))
	}
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("mismatched"), mismatched)
	fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("seed"), report.Seed)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(rt.Out)
	if err := writeFrequencies(rt, &report.Tally); err != nil {
		return err
	}
	fmt.Fprintf(rt.Out, "\n%d deals in %v\n", report.Deals, duration.Truncate(time.Millisecond))

	if reportPath != "" {
		if err := fileutil.WriteJSON(reportPath, report, 0o644); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", reportPath)
	}

	for _, m := range report.Mismatches {
		logger.Warn("Mismatch", "deal", m.Deal, "board", m.Board, "holes", m.Holes, "hands", m.Hands, "reference", m.Reference)
	}
	if !report.OK() {
		return fmt.Errorf("%d of %d compared deals disagreed with the reference evaluator", report.Mismatched, report.Compared)
	}
	return nil
}

// writeFrequencies prints each category's observed frequency with a 95% interval.
func writeFrequencies(rt *Runtime, tally *statistics.Tally) error {
	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		categoryStyle.Render("hand"),
		headerStyle.Render("count"),
		headerStyle.Render("freq"),
		headerStyle.Render("95% ci"))

	cats := statistics.Categories()
	for i := len(cats) - 1; i >= 0; i-- {
		cat := cats[i]
		lo, hi := tally.ConfidenceInterval95(cat)
		fmt.Fprintf(w, "%s\t%d\t%s\t%.3f%% - %.3f%%\n",
			categoryStyle.Render(cat.String()),
			tally.Count(cat),
			percentStyle.Render(fmt.Sprintf("%.3f%%", tally.Frequency(cat)*100)),
			lo*100, hi*100)
	}
	return w.Flush()
}
