package poker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidHandSize is returned when classification is asked for anything but five cards.
	ErrInvalidHandSize = errors.New("hand must contain exactly 5 cards")
	// ErrDuplicateCard is returned when the same card appears twice in a hand or pool.
	ErrDuplicateCard = errors.New("duplicate card")
)

// HandSizeError reports a hand of the wrong size.
type HandSizeError struct {
	Size int
}

func (e *HandSizeError) Error() string {
	return fmt.Sprintf("hand must contain exactly 5 cards, got %d", e.Size)
}

func (e *HandSizeError) Unwrap() error { return ErrInvalidHandSize }

// Category enumerates the poker hand classes ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	// RoyalFlush is the ace-high straight flush. It has the same strength as
	// StraightFlush and only differs in how it is displayed.
	RoyalFlush
)

// Strength returns the comparable strength of the category.
func (c Category) Strength() int {
	if c == RoyalFlush {
		return int(StraightFlush)
	}
	return int(c)
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Hand is a classified five-card hand.
//
// Tiebreak holds the ranks that order two hands of the same category, most
// significant first. It depends only on the multiset of ranks, so hands that
// differ only by suit always have equal tiebreaks.
type Hand struct {
	Category Category
	Tiebreak []Rank
	// Cards are the five cards, highest rank first. Suits break rank ties so
	// the order does not depend on input order.
	Cards [5]Card
}

// Compare orders two hands: category strength first, then tiebreak ranks
// position by position. It returns 1 if h wins, -1 if other wins and 0 for a split.
func (h Hand) Compare(other Hand) int {
	if a, b := h.Category.Strength(), other.Category.Strength(); a != b {
		if a > b {
			return 1
		}
		return -1
	}
	for i := 0; i < len(h.Tiebreak) && i < len(other.Tiebreak); i++ {
		if h.Tiebreak[i] != other.Tiebreak[i] {
			if h.Tiebreak[i] > other.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(h.Tiebreak) > len(other.Tiebreak):
		return 1
	case len(h.Tiebreak) < len(other.Tiebreak):
		return -1
	}
	return 0
}

// Beats reports whether h is strictly stronger than other.
func (h Hand) Beats(other Hand) bool { return h.Compare(other) > 0 }

// Ties reports whether h and other would split a pot.
func (h Hand) Ties(other Hand) bool { return h.Compare(other) == 0 }

// String returns the category followed by its tiebreak ranks, e.g. "Full House (T, A)".
func (h Hand) String() string {
	if len(h.Tiebreak) == 0 {
		return h.Category.String()
	}
	ranks := make([]string, len(h.Tiebreak))
	for i, r := range h.Tiebreak {
		ranks[i] = r.String()
	}
	return fmt.Sprintf("%s (%s)", h.Category, strings.Join(ranks, ", "))
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b Hand) int {
	return a.Compare(b)
}

// rankGroup is one distinct rank and how many times it occurs.
type rankGroup struct {
	rank  Rank
	count int
}

// Classify determines the category and tiebreak of exactly five cards. The
// cards must be valid: Classify panics on a card with an unknown rank or suit.
// Use ClassifyCards for unchecked input.
func Classify(hand [5]Card) Hand {
	for _, c := range hand {
		if !c.Valid() {
			panic(fmt.Sprintf("poker: invalid card rank %d suit %d", c.Rank, c.Suit))
		}
	}
	asc := hand
	SortCards(asc[:])

	flush := SameSuit(asc[:])
	straight := isStraight(asc)
	groups := groupRanks(asc)

	result := Hand{Cards: canonicalOrder(hand)}

	switch {
	case straight && flush:
		result.Category = StraightFlush
		if asc[0].Rank == Ten {
			result.Category = RoyalFlush
		}
		result.Tiebreak = []Rank{asc[4].Rank}
		return result
	case groups[0].count == 4:
		result.Category = FourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		result.Category = FullHouse
	case flush:
		result.Category = Flush
	case straight:
		result.Category = Straight
		result.Tiebreak = []Rank{asc[4].Rank}
		return result
	case groups[0].count == 3:
		result.Category = ThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		result.Category = TwoPair
	case groups[0].count == 2:
		result.Category = Pair
	default:
		result.Category = HighCard
	}

	// Groups are ordered by size then rank, which is exactly the tiebreak order
	// for every grouped category as well as for flush and high card.
	result.Tiebreak = make([]Rank, len(groups))
	for i, g := range groups {
		result.Tiebreak[i] = g.rank
	}
	return result
}

// ClassifyCards classifies a slice that must hold exactly five distinct cards.
func ClassifyCards(cards []Card) (Hand, error) {
	if len(cards) != 5 {
		return Hand{}, &HandSizeError{Size: len(cards)}
	}
	if err := ValidateDistinct(cards); err != nil {
		return Hand{}, err
	}
	var hand [5]Card
	copy(hand[:], cards)
	return Classify(hand), nil
}

// isStraight requires ascending input. Each rank must be the successor of the
// one before it, so A-2-3-4-5 is not a straight.
func isStraight(asc [5]Card) bool {
	for i := 0; i < len(asc)-1; i++ {
		next, ok := asc[i].Rank.Successor()
		if !ok || next != asc[i+1].Rank {
			return false
		}
	}
	return true
}

// groupRanks counts rank occurrences and orders the groups by count
// descending, then rank descending.
func groupRanks(cards [5]Card) []rankGroup {
	var counts [Ace + 1]int
	for _, c := range cards {
		counts[c.Rank]++
	}

	groups := make([]rankGroup, 0, len(cards))
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	slices.SortStableFunc(groups, func(a, b rankGroup) int {
		return b.count - a.count
	})
	return groups
}

func canonicalOrder(hand [5]Card) [5]Card {
	out := hand
	slices.SortFunc(out[:], byRankDescThenSuit)
	return out
}

func byRankDescThenSuit(a, b Card) int {
	if c := Compare(b, a); c != 0 {
		return c
	}
	return int(a.Suit) - int(b.Suit)
}

// ValidateDistinct reports the first invalid or repeated card in cards.
func ValidateDistinct(cards []Card) error {
	seen := make(map[Card]struct{}, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: rank %d suit %d", ErrInvalidCard, c.Rank, c.Suit)
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
