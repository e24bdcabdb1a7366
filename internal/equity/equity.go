// Package equity estimates how often each player wins by dealing out the
// unknown board cards many times over.
package equity

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/round"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
)

var (
	ErrTooFewHands = errors.New("need at least two hands")
	ErrBadHole     = errors.New("each hand must have exactly two cards")
	ErrBadBoard    = errors.New("board cannot have more than five cards")
)

// Options controls the simulation.
type Options struct {
	Samples int
	Workers int
	// Seed makes a run reproducible for a given Samples and Workers.
	Seed int64
}

// Result holds one player's outcome across all samples.
type Result struct {
	Hole []poker.Card
	Wins int
	// Ties counts samples where the player split the pot.
	Ties int
	// Share is the pot share won, counting a k-way split as 1/k.
	Share   float64
	Samples int
	// Tally counts the categories this player finished with.
	Tally statistics.Tally
}

// Equity returns the expected share of the pot.
func (r Result) Equity() float64 {
	if r.Samples == 0 {
		return 0
	}
	return r.Share / float64(r.Samples)
}

// WinRate returns the share of samples won outright.
func (r Result) WinRate() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Samples)
}

// TieRate returns the share of samples that ended in a split including this player.
func (r Result) TieRate() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.Samples)
}

// Estimate deals the rest of the board opts.Samples times and settles every
// showdown. With a complete board there is nothing to deal and a single
// exact sample is taken.
func Estimate(ctx context.Context, holes [][]poker.Card, board []poker.Card, opts Options) ([]Result, error) {
	if len(holes) < 2 {
		return nil, ErrTooFewHands
	}
	if len(holes) > round.MaxPlayers {
		return nil, fmt.Errorf("%w: %d", round.ErrTooManyPlayers, len(holes))
	}
	if len(board) > round.BoardCards {
		return nil, fmt.Errorf("%w: got %d", ErrBadBoard, len(board))
	}
	used := slices.Clone(board)
	for i, h := range holes {
		if len(h) != round.HoleCards {
			return nil, fmt.Errorf("hand %d: %w, got %d", i+1, ErrBadHole, len(h))
		}
		used = append(used, h...)
	}
	if err := poker.ValidateDistinct(used); err != nil {
		return nil, err
	}
	if opts.Samples <= 0 {
		return nil, fmt.Errorf("samples must be positive, got %d", opts.Samples)
	}
	if opts.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", opts.Workers)
	}

	samples := opts.Samples
	if len(board) == round.BoardCards {
		samples = 1
	}
	workers := min(opts.Workers, samples)

	var remaining []poker.Card
	for _, c := range poker.FullDeck() {
		if !slices.Contains(used, c) {
			remaining = append(remaining, c)
		}
	}

	parts := make([][]Result, workers)
	per, extra := samples/workers, samples%workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := range workers {
		n := per
		if w < extra {
			n++
		}
		g.Go(func() error {
			res, err := runWorker(ctx, holes, board, remaining, n, randutil.Derive(opts.Seed, w))
			if err != nil {
				return err
			}
			parts[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, len(holes))
	for i, h := range holes {
		results[i].Hole = slices.Clone(h)
	}
	for _, part := range parts {
		for i := range results {
			results[i].Wins += part[i].Wins
			results[i].Ties += part[i].Ties
			results[i].Share += part[i].Share
			results[i].Samples += part[i].Samples
			results[i].Tally.Merge(part[i].Tally)
		}
	}
	return results, nil
}

func runWorker(ctx context.Context, holes [][]poker.Card, board, remaining []poker.Card, samples int, seed int64) ([]Result, error) {
	rng := randutil.New(seed)
	results := make([]Result, len(holes))
	stub := slices.Clone(remaining)
	need := round.BoardCards - len(board)

	final := make([]poker.Card, round.BoardCards)
	copy(final, board)
	pool := make([]poker.Card, round.HoleCards+round.BoardCards)
	hands := make([]poker.Hand, len(holes))

	for s := 0; s < samples; s++ {
		if s%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// Partial Fisher-Yates: the last need cards of stub form the runout.
		for k := 0; k < need; k++ {
			last := len(stub) - 1 - k
			j := rng.IntN(last + 1)
			stub[j], stub[last] = stub[last], stub[j]
			final[len(board)+k] = stub[last]
		}

		for i, hole := range holes {
			copy(pool, hole)
			copy(pool[round.HoleCards:], final)
			h, err := poker.BestHand(pool)
			if err != nil {
				return nil, err
			}
			hands[i] = h
			results[i].Tally.Add(h)
			results[i].Samples++
		}

		out, err := poker.Showdown(hands)
		if err != nil {
			return nil, err
		}
		share := 1 / float64(len(out.Winners))
		for _, w := range out.Winners {
			results[w].Share += share
			if out.Split {
				results[w].Ties++
			} else {
				results[w].Wins++
			}
		}
	}
	return results, nil
}
