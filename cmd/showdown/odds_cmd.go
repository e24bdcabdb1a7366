package main

import (
	"context"
	"fmt"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
)

type OddsCmd struct {
	Hands         []string `arg:"" help:"Player hole cards, e.g. 'AcKd QhJs'"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Iterations    int      `short:"i" default:"100000" help:"Number of Monte Carlo iterations"`
	Workers       int      `short:"w" help:"Worker goroutines (default: GOMAXPROCS)"`
	Seed          *int64   `help:"Random seed for reproducible results (overrides table.seed)"`
}

func (c *OddsCmd) Run(g *Globals, rt *Runtime) error {
	cfg, logger, err := rt.setup(g)
	if err != nil {
		return err
	}

	holes := make([][]poker.Card, len(c.Hands))
	for i, s := range c.Hands {
		if holes[i], err = poker.ParseCards(s); err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	seedPtr := cfg.Table.Seed
	if c.Seed != nil {
		seedPtr = c.Seed
	}
	seed := randutil.Seed(seedPtr, rt.Clock)

	start := rt.Clock.Now()
	results, err := equity.Estimate(context.Background(), holes, board, equity.Options{
		Samples: c.Iterations,
		Workers: workers,
		Seed:    seed,
	})
	if err != nil {
		return err
	}
	duration := rt.Clock.Now().Sub(start)
	logger.Debug("Estimated equity", "hands", len(holes), "iterations", c.Iterations, "workers", workers, "seed", seed)

	if len(board) > 0 {
		fmt.Fprintf(rt.Out, "%s\n%s\n\n", headerStyle.Render("board"), renderCards(board))
	}

	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(poker.FormatCards(r.Hole)),
			winStyle.Render(fmt.Sprintf("%.1f%%", r.WinRate()*100)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", r.TieRate()*100)),
			percentStyle.Render(fmt.Sprintf("%.1f%%", r.Equity()*100)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.Possibilities {
		fmt.Fprintln(rt.Out)
		if err := writePossibilities(rt, results); err != nil {
			return err
		}
	}

	samples := 0
	if len(results) > 0 {
		samples = results[0].Samples
	}
	fmt.Fprintf(rt.Out, "\n%d iterations in %v\n", samples, duration.Truncate(time.Millisecond))
	return nil
}

// writePossibilities prints how often each player finishes with each
// category, strongest first.
func writePossibilities(rt *Runtime, results []equity.Result) error {
	cats := statistics.Categories()

	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s", categoryStyle.Render("hand"))
	for _, r := range results {
		fmt.Fprintf(w, "\t%s", handStyle.Render(poker.FormatCards(r.Hole)))
	}
	fmt.Fprintln(w)

	for i := len(cats) - 1; i >= 0; i-- {
		cat := cats[i]
		seen := false
		for _, r := range results {
			if r.Tally.Count(cat) > 0 {
				seen = true
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(w, "%s", categoryStyle.Render(cat.String()))
		for _, r := range results {
			if r.Tally.Count(cat) > 0 {
				fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", r.Tally.Frequency(cat)*100)))
			} else {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
