package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrDeckExhausted is returned when more cards are requested than remain.
	ErrDeckExhausted = errors.New("deck exhausted")
	// ErrNilRand is returned when a deck is created without a random source.
	ErrNilRand = errors.New("deck requires a random source")
)

// Rand is the randomness a deck needs to shuffle. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Deck represents a standard 52-card deck
type Deck struct {
	cards [52]Card
	next  int
	rng   Rand
}

// NewDeck creates a new deck shuffled with rng. The deck never falls back to a
// global random source, so the same seed always deals the same cards.
func NewDeck(rng Rand) (*Deck, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	d := &Deck{rng: rng}
	copy(d.cards[:], FullDeck())
	d.Shuffle()
	return d, nil
}

// Shuffle returns every card to the deck and shuffles it using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck. It deals nothing when fewer than n remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d cards, %d remain", ErrDeckExhausted, n, d.Remaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Reset resets and reshuffles the deck
func (d *Deck) Reset() {
	d.Shuffle()
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
