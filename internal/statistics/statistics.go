package statistics

import (
	"fmt"
	"math"

	"github.com/lox/showdown/poker"
)

// NumCategories is the number of distinct hand categories tracked.
const NumCategories = int(poker.RoyalFlush) + 1

// Tally counts how often each hand category was made.
type Tally struct {
	Hands  int
	Counts [NumCategories]int
}

// Add records one classified hand.
func (t *Tally) Add(h poker.Hand) {
	t.Hands++
	if int(h.Category) < NumCategories {
		t.Counts[h.Category]++
	}
}

// Merge folds other into t.
func (t *Tally) Merge(other Tally) {
	t.Hands += other.Hands
	for i, n := range other.Counts {
		t.Counts[i] += n
	}
}

// Count returns the number of hands recorded in category c.
func (t *Tally) Count(c poker.Category) int {
	if int(c) >= NumCategories {
		return 0
	}
	return t.Counts[c]
}

// Frequency returns the observed share of hands in category c.
func (t *Tally) Frequency(c poker.Category) float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(t.Count(c)) / float64(t.Hands)
}

// StdError returns the standard error of the observed frequency of c
func (t *Tally) StdError(c poker.Category) float64 {
	if t.Hands == 0 {
		return 0
	}
	p := t.Frequency(c)
	return math.Sqrt(p * (1 - p) / float64(t.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the frequency of c
func (t *Tally) ConfidenceInterval95(c poker.Category) (float64, float64) {
	p := t.Frequency(c)
	margin := 1.96 * t.StdError(c)
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Categories lists every category from weakest to strongest.
func Categories() []poker.Category {
	out := make([]poker.Category, NumCategories)
	for i := range out {
		out[i] = poker.Category(i)
	}
	return out
}

// Validate checks that the per-category counts add up.
func (t *Tally) Validate() error {
	sum := 0
	for _, n := range t.Counts {
		if n < 0 {
			return fmt.Errorf("negative category count %d", n)
		}
		sum += n
	}
	if sum != t.Hands {
		return fmt.Errorf("category counts (%d) do not match hands count (%d)", sum, t.Hands)
	}
	return nil
}
