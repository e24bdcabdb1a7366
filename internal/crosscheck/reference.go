package crosscheck

import (
	"fmt"

	ph "github.com/paulhankin/poker"

	"github.com/lox/showdown/poker"
)

// reference scores seven-card pools with github.com/paulhankin/poker.
type reference struct {
	// sign is +1 when a larger reference score is the stronger hand.
	sign int
}

func newReference() (*reference, error) {
	strong, err := referenceScore(poker.MustParseCards("AsKsQsJsTs2h3d"))
	if err != nil {
		return nil, err
	}
	weak, err := referenceScore(poker.MustParseCards("2c3d4h5s7c9dJh"))
	if err != nil {
		return nil, err
	}
	if strong == weak {
		return nil, fmt.Errorf("reference evaluator scored a royal flush and jack high equally (%d)", strong)
	}
	r := &reference{sign: 1}
	if strong < weak {
		r.sign = -1
	}
	return r, nil
}

// compare orders two seven-card pools the way Hand.Compare does.
func (r *reference) compare(a, b []poker.Card) (int, error) {
	sa, err := referenceScore(a)
	if err != nil {
		return 0, err
	}
	sb, err := referenceScore(b)
	if err != nil {
		return 0, err
	}
	switch {
	case sa == sb:
		return 0, nil
	case sa > sb:
		return r.sign, nil
	default:
		return -r.sign, nil
	}
}

func referenceScore(pool []poker.Card) (int16, error) {
	if len(pool) != 7 {
		return 0, fmt.Errorf("reference scoring needs 7 cards, got %d", len(pool))
	}
	var cards [7]ph.Card
	for i, c := range pool {
		rc, err := toReference(c)
		if err != nil {
			return 0, err
		}
		cards[i] = rc
	}
	return ph.Eval7(&cards), nil
}

// describe returns the reference evaluator's description of a pool.
func describe(pool []poker.Card) string {
	cards := make([]ph.Card, 0, len(pool))
	for _, c := range pool {
		rc, err := toReference(c)
		if err != nil {
			return err.Error()
		}
		cards = append(cards, rc)
	}
	d, err := ph.Describe(cards)
	if err != nil {
		return err.Error()
	}
	return d
}

// toReference converts a card. The reference ranks run 1..13 with the ace low.
func toReference(c poker.Card) (ph.Card, error) {
	if !c.Valid() {
		var zero ph.Card
		return zero, fmt.Errorf("%w: %v", poker.ErrInvalidCard, c)
	}
	var s ph.Suit
	switch c.Suit {
	case poker.Hearts:
		s = ph.Heart
	case poker.Diamonds:
		s = ph.Diamond
	case poker.Spades:
		s = ph.Spade
	case poker.Clubs:
		s = ph.Club
	}
	r := ph.Rank(c.Rank)
	if c.Rank == poker.Ace {
		r = ph.Rank(1)
	}
	return ph.MakeCard(s, r)
}

// hasWheel reports whether the pool holds an ace, two, three, four and five.
// The reference plays those as a five-high straight; this module does not.
func hasWheel(pool []poker.Card) bool {
	var seen [poker.Ace + 1]bool
	for _, c := range pool {
		if c.Valid() {
			seen[c.Rank] = true
		}
	}
	return seen[poker.Ace] && seen[poker.Two] && seen[poker.Three] && seen[poker.Four] && seen[poker.Five]
}
