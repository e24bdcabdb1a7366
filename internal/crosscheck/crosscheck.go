// Package crosscheck deals random heads-up boards and checks that the hand
// evaluator orders every pair of seven-card pools the same way as an
// independent evaluator.
package crosscheck

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
)

// MaxRecorded caps the mismatches kept in a report. Every mismatch is still counted.
const MaxRecorded = 100

// Options configures a run.
type Options struct {
	Deals   int
	Workers int
	Seed    int64
	Logger  *log.Logger
}

// Mismatch records a deal where the two evaluators disagreed.
type Mismatch struct {
	Deal      int       `json:"deal"`
	Seed      int64     `json:"seed"`
	Board     string    `json:"board"`
	Holes     [2]string `json:"holes"`
	Hands     [2]string `json:"hands"`
	Reference [2]string `json:"reference"`
	Ours      int       `json:"ours"`
	Theirs    int       `json:"theirs"`
}

// Report summarises a run.
type Report struct {
	Seed       int64          `json:"seed"`
	Deals      int            `json:"deals"`
	Compared   int            `json:"compared"`
	Skipped    int            `json:"skipped_wheel"`
	Mismatched int            `json:"mismatched"`
	Mismatches []Mismatch     `json:"mismatches"`
	Categories map[string]int `json:"categories"`

	// Tally counts the categories of every evaluated pool.
	Tally statistics.Tally `json:"-"`
}

// OK reports whether every compared deal agreed.
func (r *Report) OK() bool { return r.Mismatched == 0 }

func (r *Report) merge(part *Report) {
	r.Deals += part.Deals
	r.Compared += part.Compared
	r.Skipped += part.Skipped
	r.Mismatched += part.Mismatched
	for _, m := range part.Mismatches {
		if len(r.Mismatches) < MaxRecorded {
			r.Mismatches = append(r.Mismatches, m)
		}
	}
	r.Tally.Merge(part.Tally)
}

// Run deals opts.Deals boards across opts.Workers workers. Deal i always
// uses the seed randutil.Derive(opts.Seed, i), so results do not depend on
// the number of workers.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Deals <= 0 {
		return nil, fmt.Errorf("deals must be positive, got %d", opts.Deals)
	}
	if opts.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", opts.Workers)
	}
	workers := min(opts.Workers, opts.Deals)
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("crosscheck")

	ref, err := newReference()
	if err != nil {
		return nil, err
	}

	parts := make([]*Report, workers)
	per, extra := opts.Deals/workers, opts.Deals%workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	start := 0
	for w := range workers {
		n := per
		if w < extra {
			n++
		}
		from, to := start, start+n
		start = to

		g.Go(func() error {
			part := &Report{}
			for i := from; i < to; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := checkDeal(ref, opts.Seed, i, part); err != nil {
					return fmt.Errorf("deal %d: %w", i, err)
				}
			}
			parts[w] = part
			logger.Debug("Worker finished", "worker", w, "deals", part.Deals, "mismatched", part.Mismatched)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Seed: opts.Seed, Mismatches: []Mismatch{}}
	for _, part := range parts {
		report.merge(part)
	}
	report.Categories = make(map[string]int)
	for _, c := range statistics.Categories() {
		if n := report.Tally.Count(c); n > 0 {
			report.Categories[c.String()] = n
		}
	}
	if err := report.Tally.Validate(); err != nil {
		return nil, err
	}
	return report, nil
}

// checkDeal deals two hole hands and a board from the deal's own deck and
// compares the resulting pools.
func checkDeal(ref *reference, parent int64, i int, part *Report) error {
	seed := randutil.Derive(parent, i)
	deck, err := poker.NewDeck(randutil.New(seed))
	if err != nil {
		return err
	}
	cards, err := deck.Deal(9)
	if err != nil {
		return err
	}

	board := cards[4:]
	pools := [2][]poker.Card{
		append(append([]poker.Card{}, cards[0:2]...), board...),
		append(append([]poker.Card{}, cards[2:4]...), board...),
	}

	var hands [2]poker.Hand
	for p, pool := range pools {
		h, err := poker.BestHand(pool)
		if err != nil {
			return err
		}
		hands[p] = h
		part.Tally.Add(h)
	}
	part.Deals++

	if hasWheel(pools[0]) || hasWheel(pools[1]) {
		part.Skipped++
		return nil
	}

	theirs, err := ref.compare(pools[0], pools[1])
	if err != nil {
		return err
	}
	part.Compared++

	ours := poker.CompareHands(hands[0], hands[1])
	if ours == theirs {
		return nil
	}
	part.Mismatched++
	if len(part.Mismatches) >= MaxRecorded {
		return nil
	}
	part.Mismatches = append(part.Mismatches, Mismatch{
		Deal:      i,
		Seed:      seed,
		Board:     poker.FormatCards(board),
		Holes:     [2]string{poker.FormatCards(cards[0:2]), poker.FormatCards(cards[2:4])},
		Hands:     [2]string{hands[0].String(), hands[1].String()},
		Reference: [2]string{describe(pools[0]), describe(pools[1])},
		Ours:      ours,
		Theirs:    theirs,
	})
	return nil
}
