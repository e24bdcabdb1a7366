package poker

import (
	"errors"
	"slices"
	"testing"

	"github.com/lox/showdown/internal/randutil"
)

func TestBestHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		pool     string
		category Category
		tiebreak []Rank
		cards    string
	}{
		{
			name:     "spade flush ignores king and second deuce",
			pool:     "2s3s5s6s8sKd2d",
			category: Flush,
			tiebreak: ranks("86532"),
			cards:    "8s6s5s3s2s",
		},
		{
			name:     "five card pool",
			pool:     "TcJcQcKcAc",
			category: RoyalFlush,
			tiebreak: ranks("A"),
			cards:    "AcKcQcJcTc",
		},
		{
			name:     "six card pool picks higher straight",
			pool:     "4s5h6d7c8s9h",
			category: Straight,
			tiebreak: ranks("9"),
		},
		{
			name:     "best two of three pairs",
			pool:     "AhAdKsKc2s2dQh",
			category: TwoPair,
			tiebreak: ranks("AKQ"),
		},
		{
			name:     "two trips make a full house",
			pool:     "9h9d9sKcKsKd2h",
			category: FullHouse,
			tiebreak: ranks("K9"),
		},
		{
			name:     "quads take the best kicker",
			pool:     "7h7d7s7c2sKd3h",
			category: FourOfAKind,
			tiebreak: ranks("7K"),
		},
		{
			name:     "straight flush over flush",
			pool:     "3h4h5h6h7hAhKh",
			category: StraightFlush,
			tiebreak: ranks("7"),
		},
		{
			name:     "wheel cards stay high card",
			pool:     "Ah2d3s4c5s9hJd",
			category: HighCard,
			tiebreak: ranks("AJ954"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BestHand(MustParseCards(tt.pool))
			if err != nil {
				t.Fatalf("BestHand(%s) error: %v", tt.pool, err)
			}
			if got.Category != tt.category {
				t.Errorf("BestHand(%s) category = %s, want %s", tt.pool, got.Category, tt.category)
			}
			if !slices.Equal(got.Tiebreak, tt.tiebreak) {
				t.Errorf("BestHand(%s) tiebreak = %v, want %v", tt.pool, got.Tiebreak, tt.tiebreak)
			}
			if tt.cards != "" && FormatCards(got.Cards[:]) != FormatCards(MustParseCards(tt.cards)) {
				t.Errorf("BestHand(%s) cards = %v, want %s", tt.pool, got.Cards, tt.cards)
			}
		})
	}
}

func TestBestHandPoolSize(t *testing.T) {
	t.Parallel()
	deck := FullDeck()
	for size := 0; size <= 10; size++ {
		_, err := BestHand(deck[:size])
		valid := size >= MinPoolSize && size <= MaxPoolSize
		if valid && err != nil {
			t.Errorf("BestHand with %d cards: unexpected error %v", size, err)
		}
		if !valid {
			var sizeErr *PoolSizeError
			if !errors.Is(err, ErrInvalidPoolSize) || !errors.As(err, &sizeErr) || sizeErr.Size != size {
				t.Errorf("BestHand with %d cards: error = %v, want PoolSizeError", size, err)
			}
		}
	}
}

func TestBestHandDuplicateCard(t *testing.T) {
	t.Parallel()
	_, err := BestHand(MustParseCards("AsAsKdQhJc9d"))
	if !errors.Is(err, ErrDuplicateCard) {
		t.Fatalf("error = %v, want ErrDuplicateCard", err)
	}
}

func TestBestHandDoesNotMutatePool(t *testing.T) {
	t.Parallel()
	pool := MustParseCards("2s3s5s6s8sKd2d")
	orig := slices.Clone(pool)
	if _, err := BestHand(pool); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(pool, orig) {
		t.Errorf("pool mutated: %v -> %v", orig, pool)
	}
}

// The best hand of a pool must equal the maximum over classifying every
// subset, and must not depend on pool order.
func TestBestHandProperties(t *testing.T) {
	t.Parallel()
	rng := randutil.New(42)
	deck := FullDeck()
	for i := 0; i < 300; i++ {
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })
		size := MinPoolSize + i%3
		pool := slices.Clone(deck[:size])

		best, err := BestHand(pool)
		if err != nil {
			t.Fatal(err)
		}

		subsets := 0
		var hand [5]Card
		for combo := range Combinations(pool, 5) {
			copy(hand[:], combo)
			h := Classify(hand)
			if h.Category > RoyalFlush {
				t.Fatalf("subset %v classified out of range: %d", combo, h.Category)
			}
			if h.Beats(best) {
				t.Fatalf("subset %v (%s) beats BestHand %s", combo, h, best)
			}
			subsets++
		}
		if want := []int{1, 6, 21}[size-5]; subsets != want {
			t.Fatalf("%d-card pool enumerated %d subsets, want %d", size, subsets, want)
		}

		shuffled := slices.Clone(pool)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		again, err := BestHand(shuffled)
		if err != nil {
			t.Fatal(err)
		}
		if again.Compare(best) != 0 || again.Cards != best.Cards {
			t.Fatalf("BestHand(%v) = %v, shuffled gave %v", pool, best, again)
		}
	}
}

func TestCombinations(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("2c3c4c5c")
	var got []string
	for combo := range Combinations(cards, 2) {
		got = append(got, FormatCards(combo))
	}
	want := []string{"2c 3c", "2c 4c", "2c 5c", "3c 4c", "3c 5c", "4c 5c"}
	if !slices.Equal(got, want) {
		t.Errorf("Combinations = %v, want %v", got, want)
	}

	count := 0
	for range Combinations(cards, 5) {
		count++
	}
	if count != 0 {
		t.Errorf("k > n yielded %d combinations", count)
	}

	count = 0
	for range Combinations(FullDeck()[:7], 5) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("early break yielded %d", count)
	}
}

func TestShowdown(t *testing.T) {
	t.Parallel()
	board := "Qh7d3c9s2h"
	best := func(hole string) Hand {
		h, err := BestHand(MustParseCards(hole + board))
		if err != nil {
			t.Fatal(err)
		}
		return h
	}

	t.Run("single winner", func(t *testing.T) {
		res, err := Showdown([]Hand{best("QdJc"), best("AcAd"), best("8c8d")})
		if err != nil {
			t.Fatal(err)
		}
		if res.Split || !slices.Equal(res.Winners, []int{1}) {
			t.Errorf("Showdown = %+v, want winner 1", res)
		}
		if res.Best.Category != Pair {
			t.Errorf("best = %s", res.Best)
		}
	})

	t.Run("identical pairs split", func(t *testing.T) {
		res, err := Showdown([]Hand{best("QdJc"), best("QsJd"), best("Td4s")})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Split || !slices.Equal(res.Winners, []int{0, 1}) {
			t.Errorf("Showdown = %+v, want split between 0 and 1", res)
		}
		if res.Best.Category != Pair || !slices.Equal(res.Best.Tiebreak, ranks("QJ97")) {
			t.Errorf("best = %s", res.Best)
		}
	})

	t.Run("later hand takes over", func(t *testing.T) {
		res, err := Showdown([]Hand{best("QdJc"), best("QsJd"), best("KhKd")})
		if err != nil {
			t.Fatal(err)
		}
		if res.Split || !slices.Equal(res.Winners, []int{2}) {
			t.Errorf("Showdown = %+v, want winner 2", res)
		}
	})

	t.Run("no hands", func(t *testing.T) {
		if _, err := Showdown(nil); !errors.Is(err, ErrNoHands) {
			t.Errorf("error = %v, want ErrNoHands", err)
		}
	})
}

func BenchmarkBestHand7(b *testing.B) {
	pool := MustParseCards("2s3s5s6s8sKd2d")
	for i := 0; i < b.N; i++ {
		_, _ = BestHand(pool)
	}
}
