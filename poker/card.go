package poker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidCard is returned when a card, rank or suit cannot be parsed or constructed.
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit. Suits carry no ranking weight.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists every suit in declaration order.
var Suits = [...]Suit{Hearts, Diamonds, Spades, Clubs}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single lowercase letter used in card notation.
func (s Suit) Letter() byte {
	switch s {
	case Hearts:
		return 'h'
	case Diamonds:
		return 'd'
	case Spades:
		return 's'
	case Clubs:
		return 'c'
	default:
		return '?'
	}
}

// Rank is a card's face value on a single linear scale where Ace is always high.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NewRank validates that v lies in 2..14.
func NewRank(v int) (Rank, error) {
	if v < int(Two) || v > int(Ace) {
		return 0, fmt.Errorf("%w: rank %d out of range 2-14", ErrInvalidCard, v)
	}
	return Rank(v), nil
}

// Valid reports whether r is one of the 13 ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Successor returns the next higher rank. Ace has no successor, so the
// Ace-low straight is never formed by chaining successors.
func (r Rank) Successor() (Rank, bool) {
	if !r.Valid() || r == Ace {
		return 0, false
	}
	return r + 1, true
}

const rankChars = "23456789TJQKA"

// String returns the rank character (2-9, T, J, Q, K, A)
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Card is an immutable suit and rank pair. Equality is structural.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// Valid reports whether the card has a real rank and suit.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit <= Clubs
}

// String returns the card in rank-then-suit-letter notation, e.g. "As".
func (c Card) String() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// Pretty returns the card using the suit symbol, e.g. "A♠".
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.String()
}

// Compare orders cards by rank only. It returns -1, 0 or 1; cards of equal
// rank compare equal whatever their suits.
func Compare(a, b Card) int {
	switch {
	case a.Rank < b.Rank:
		return -1
	case a.Rank > b.Rank:
		return 1
	default:
		return 0
	}
}

// SameSuit reports whether every card shares one suit. It is false for an
// empty slice.
func SameSuit(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// SortCards sorts cards ascending by rank in place. Cards of equal rank keep
// their relative order.
func SortCards(cards []Card) {
	slices.SortStableFunc(cards, Compare)
}

// FullDeck returns the 52 distinct cards, suit by suit, Two through Ace.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// ParseCard parses a card such as "As", "td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", err, s)
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", err, s)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a run of cards such as "AsKsQsJsTs" or "As Ks 10s".
// Whitespace and commas between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', ',':
			return -1
		}
		return r
	}, s)
	compact = strings.ReplaceAll(compact, "10", "T")

	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length card string %q", ErrInvalidCard, s)
	}

	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		card, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case 't', 'T':
		return Ten, nil
	case 'j', 'J':
		return Jack, nil
	case 'q', 'Q':
		return Queen, nil
	case 'k', 'K':
		return King, nil
	case 'a', 'A':
		return Ace, nil
	}
	if b >= '2' && b <= '9' {
		return Rank(b-'2') + Two, nil
	}
	return 0, fmt.Errorf("%w: bad rank %q", ErrInvalidCard, b)
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 's', 'S':
		return Spades, nil
	case 'c', 'C':
		return Clubs, nil
	}
	return 0, fmt.Errorf("%w: bad suit %q", ErrInvalidCard, b)
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
