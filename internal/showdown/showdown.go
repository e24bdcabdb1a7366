// Package showdown evaluates players' card pools and decides who wins.
//
// Every pool is evaluated independently, so evaluations run concurrently
// without any shared state.
package showdown

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/poker"
)

// Entry is one player's pool at showdown.
type Entry struct {
	Seat int
	Pool []poker.Card
}

// Outcome is the result of a showdown. Hands is aligned with the entries
// that were compared; Winners holds seat numbers.
type Outcome struct {
	Hands   []poker.Hand
	Best    poker.Hand
	Winners []int
	Split   bool
	// Uncontested is set when a single player remained and no cards were compared.
	Uncontested bool
}

// Evaluate finds the best hand of every pool concurrently. The first invalid
// pool cancels the rest and its error is returned.
func Evaluate(ctx context.Context, pools [][]poker.Card) ([]poker.Hand, error) {
	hands := make([]poker.Hand, len(pools))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pool := range pools {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hand, err := poker.BestHand(pool)
			if err != nil {
				return fmt.Errorf("pool %d: %w", i, err)
			}
			hands[i] = hand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hands, nil
}

// Decide evaluates every entry and reports the winning seats. Equal best
// hands are reported as a split.
func Decide(ctx context.Context, entries []Entry) (Outcome, error) {
	if len(entries) == 0 {
		return Outcome{}, poker.ErrNoHands
	}

	pools := make([][]poker.Card, len(entries))
	for i, e := range entries {
		pools[i] = e.Pool
	}
	hands, err := Evaluate(ctx, pools)
	if err != nil {
		return Outcome{}, err
	}

	result, err := poker.Showdown(hands)
	if err != nil {
		return Outcome{}, err
	}

	winners := make([]int, len(result.Winners))
	for i, idx := range result.Winners {
		winners[i] = entries[idx].Seat
	}
	return Outcome{
		Hands:   hands,
		Best:    result.Best,
		Winners: winners,
		Split:   result.Split,
	}, nil
}
