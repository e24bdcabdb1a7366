package statistics

import (
	"math"
	"testing"

	"github.com/lox/showdown/poker"
)

func hand(t *testing.T, s string) poker.Hand {
	t.Helper()
	h, err := poker.ClassifyCards(poker.MustParseCards(s))
	if err != nil {
		t.Fatalf("classify %s: %v", s, err)
	}
	return h
}

func TestTally_Empty(t *testing.T) {
	var tally Tally

	if tally.Frequency(poker.Pair) != 0 {
		t.Errorf("Expected frequency of 0 for empty tally, got %f", tally.Frequency(poker.Pair))
	}
	if tally.StdError(poker.Pair) != 0 {
		t.Errorf("Expected stderr of 0 for empty tally, got %f", tally.StdError(poker.Pair))
	}
	if err := tally.Validate(); err != nil {
		t.Errorf("empty tally should validate: %v", err)
	}
}

func TestTally_Add(t *testing.T) {
	var tally Tally
	tally.Add(hand(t, "AhAd7c5s2h"))
	tally.Add(hand(t, "KhKdKcKs2h"))
	tally.Add(hand(t, "AsKsQsJsTs"))
	tally.Add(hand(t, "9h9d7c5s2h"))

	if tally.Hands != 4 {
		t.Errorf("Expected 4 hands, got %d", tally.Hands)
	}
	if got := tally.Count(poker.Pair); got != 2 {
		t.Errorf("Expected 2 pairs, got %d", got)
	}
	if got := tally.Count(poker.RoyalFlush); got != 1 {
		t.Errorf("Expected 1 royal flush, got %d", got)
	}
	if got := tally.Frequency(poker.Pair); got != 0.5 {
		t.Errorf("Expected pair frequency 0.5, got %f", got)
	}
	if err := tally.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTally_Merge(t *testing.T) {
	var a, b Tally
	a.Add(hand(t, "AhAd7c5s2h"))
	b.Add(hand(t, "AhKd7c5s2h"))
	b.Add(hand(t, "AhAd7c7s2h"))

	a.Merge(b)
	if a.Hands != 3 {
		t.Errorf("Expected 3 hands, got %d", a.Hands)
	}
	for _, c := range []poker.Category{poker.Pair, poker.HighCard, poker.TwoPair} {
		if a.Count(c) != 1 {
			t.Errorf("Expected 1 %s, got %d", c, a.Count(c))
		}
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTally_ConfidenceInterval(t *testing.T) {
	var tally Tally
	for i := 0; i < 100; i++ {
		if i%4 == 0 {
			tally.Add(hand(t, "AhAd7c5s2h"))
		} else {
			tally.Add(hand(t, "AhKd7c5s2h"))
		}
	}

	p := tally.Frequency(poker.Pair)
	if p != 0.25 {
		t.Fatalf("Expected frequency 0.25, got %f", p)
	}
	wantSE := math.Sqrt(0.25 * 0.75 / 100)
	if math.Abs(tally.StdError(poker.Pair)-wantSE) > 1e-12 {
		t.Errorf("Expected stderr %f, got %f", wantSE, tally.StdError(poker.Pair))
	}
	lo, hi := tally.ConfidenceInterval95(poker.Pair)
	if lo >= p || hi <= p {
		t.Errorf("interval [%f, %f] does not contain %f", lo, hi, p)
	}

	// Never-seen categories clamp at zero.
	lo, hi = tally.ConfidenceInterval95(poker.Flush)
	if lo != 0 || hi != 0 {
		t.Errorf("Expected [0, 0] for unseen category, got [%f, %f]", lo, hi)
	}
}

func TestTally_ValidateDetectsMismatch(t *testing.T) {
	tally := Tally{Hands: 3}
	tally.Counts[poker.Pair] = 2
	if err := tally.Validate(); err == nil {
		t.Error("Expected validation error for mismatched counts")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != NumCategories {
		t.Fatalf("Expected %d categories, got %d", NumCategories, len(cats))
	}
	if cats[0] != poker.HighCard || cats[len(cats)-1] != poker.RoyalFlush {
		t.Errorf("unexpected category order: %v", cats)
	}
}
