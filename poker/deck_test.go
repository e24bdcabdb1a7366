package poker

import (
	"errors"
	"testing"

	"github.com/lox/showdown/internal/randutil"
)

func TestDeck(t *testing.T) {
	t.Parallel()
	deck, err := NewDeck(randutil.New(1))
	if err != nil {
		t.Fatal(err)
	}
	if deck.Remaining() != 52 {
		t.Errorf("Expected 52 cards, got %d", deck.Remaining())
	}

	seen := make(map[Card]bool)
	hole, err := deck.Deal(2)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range hole {
		seen[c] = true
	}
	for deck.Remaining() > 0 {
		c, err := deck.DealOne()
		if err != nil {
			t.Fatal(err)
		}
		if seen[c] {
			t.Fatalf("card %v dealt twice", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("dealt %d distinct cards, want 52", len(seen))
	}

	if _, err := deck.DealOne(); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("DealOne on empty deck error = %v, want ErrDeckExhausted", err)
	}
	if cards, err := deck.Deal(1); !errors.Is(err, ErrDeckExhausted) || cards != nil {
		t.Errorf("Deal on empty deck = %v, %v", cards, err)
	}

	deck.Reset()
	if deck.Remaining() != 52 {
		t.Errorf("after Reset expected 52 cards, got %d", deck.Remaining())
	}
}

func TestDeckDealTooMany(t *testing.T) {
	t.Parallel()
	deck, err := NewDeck(randutil.New(2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := deck.Deal(50); err != nil {
		t.Fatal(err)
	}
	if _, err := deck.Deal(3); !errors.Is(err, ErrDeckExhausted) {
		t.Fatalf("error = %v, want ErrDeckExhausted", err)
	}
	if deck.Remaining() != 2 {
		t.Errorf("failed deal consumed cards: %d remain", deck.Remaining())
	}
	if _, err := deck.Deal(-1); err == nil {
		t.Error("negative deal should fail")
	}
}

func TestDeckDeterministic(t *testing.T) {
	t.Parallel()
	a, _ := NewDeck(randutil.New(99))
	b, _ := NewDeck(randutil.New(99))
	ca, _ := a.Deal(52)
	cb, _ := b.Deal(52)
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("same seed dealt %v and %v at %d", ca[i], cb[i], i)
		}
	}
}

func TestDeckDealReturnsCopy(t *testing.T) {
	t.Parallel()
	deck, _ := NewDeck(randutil.New(3))
	cards, _ := deck.Deal(2)
	first := cards[0]
	cards[0] = Card{}
	deck.Reset()
	again, _ := deck.Deal(52)
	found := false
	for _, c := range again {
		if c == first {
			found = true
		}
		if c == (Card{}) {
			t.Fatal("caller mutation leaked into deck")
		}
	}
	if !found {
		t.Errorf("card %v missing after reset", first)
	}
}

func TestNewDeckNilRand(t *testing.T) {
	t.Parallel()
	if _, err := NewDeck(nil); !errors.Is(err, ErrNilRand) {
		t.Errorf("error = %v, want ErrNilRand", err)
	}
}
