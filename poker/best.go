package poker

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

const (
	// MinPoolSize and MaxPoolSize bound the cards a player may choose five from.
	MinPoolSize = 5
	MaxPoolSize = 7
)

var (
	// ErrInvalidPoolSize is returned by BestHand for pools outside 5-7 cards.
	ErrInvalidPoolSize = errors.New("pool must contain 5 to 7 cards")
	// ErrNoHands is returned by Showdown when there is nothing to compare.
	ErrNoHands = errors.New("no hands to compare")
)

// PoolSizeError reports a pool of the wrong size.
type PoolSizeError struct {
	Size int
}

func (e *PoolSizeError) Error() string {
	return fmt.Sprintf("pool must contain %d to %d cards, got %d", MinPoolSize, MaxPoolSize, e.Size)
}

func (e *PoolSizeError) Unwrap() error { return ErrInvalidPoolSize }

// BestHand classifies every five-card subset of pool and returns the strongest.
// The pool is not modified. The result does not depend on the order of the pool.
func BestHand(pool []Card) (Hand, error) {
	if len(pool) < MinPoolSize || len(pool) > MaxPoolSize {
		return Hand{}, &PoolSizeError{Size: len(pool)}
	}
	if err := ValidateDistinct(pool); err != nil {
		return Hand{}, err
	}

	// Enumerate from a canonical order so equal-strength subsets resolve to the
	// same cards regardless of how the pool was supplied.
	sorted := slices.Clone(pool)
	slices.SortFunc(sorted, byRankDescThenSuit)

	var (
		best  Hand
		found bool
		five  [5]Card
	)
	for combo := range Combinations(sorted, 5) {
		copy(five[:], combo)
		hand := Classify(five)
		if !found || hand.Beats(best) {
			best = hand
			found = true
		}
	}
	return best, nil
}

// Combinations yields every k-card subset of cards in lexicographic index
// order. The yielded slice is reused between iterations; copy it to retain it.
func Combinations(cards []Card, k int) iter.Seq[[]Card] {
	return func(yield func([]Card) bool) {
		n := len(cards)
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		combo := make([]Card, k)
		for {
			for i, j := range idx {
				combo[i] = cards[j]
			}
			if !yield(combo) {
				return
			}

			// Advance the rightmost index that still has room.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// Result is the outcome of comparing several players' best hands.
type Result struct {
	// Best is the winning hand. When Split is set every winner holds a hand
	// equal to it.
	Best Hand
	// Winners are indexes into the compared hands, ascending.
	Winners []int
	// Split is set when more than one hand compares equal to Best.
	Split bool
}

// Showdown finds the strongest of hands. Equal hands are reported together
// as a split rather than an arbitrary winner.
func Showdown(hands []Hand) (Result, error) {
	if len(hands) == 0 {
		return Result{}, ErrNoHands
	}

	best := hands[0]
	winners := []int{0}
	for i, h := range hands[1:] {
		switch h.Compare(best) {
		case 1:
			best = h
			winners = append(winners[:0], i+1)
		case 0:
			winners = append(winners, i+1)
		}
	}
	return Result{Best: best, Winners: winners, Split: len(winners) > 1}, nil
}
