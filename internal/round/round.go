// Package round deals a single Texas Hold'em round: hole cards for every
// seat, then the flop, turn and river, and finally the showdown.
//
// Betting is not modelled. A round only tracks which seats are still live.
package round

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/showdown/internal/dealid"
	"github.com/lox/showdown/internal/showdown"
	"github.com/lox/showdown/poker"
)

const (
	// HoleCards is the number of private cards dealt to each seat.
	HoleCards = 2
	// BoardCards is the number of community cards once the river is out.
	BoardCards = 5

	MinPlayers = 2
	// MaxPlayers is the most seats a single deck can serve through the river.
	MaxPlayers = (52 - BoardCards) / HoleCards
)

var (
	ErrTooFewPlayers  = errors.New("not enough players")
	ErrTooManyPlayers = errors.New("too many players for one deck")
	ErrRoundComplete  = errors.New("round is complete")
	ErrNotAtShowdown  = errors.New("showdown requires the river")
	ErrUnknownSeat    = errors.New("unknown seat")
	ErrSeatFolded     = errors.New("seat has folded")
	ErrLastLiveSeat   = errors.New("cannot fold the last live seat")
)

// Street is a stage of the round.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// cardsFor is the number of community cards revealed on each street.
var cardsFor = map[Street]int{Flop: 3, Turn: 1, River: 1}

// Config describes a round.
type Config struct {
	Players int
}

// Validate checks the configuration against the size of one deck.
func (c Config) Validate() error {
	switch {
	case c.Players < MinPlayers:
		return fmt.Errorf("%w: %d (minimum %d)", ErrTooFewPlayers, c.Players, MinPlayers)
	case c.Players > MaxPlayers:
		return fmt.Errorf("%w: %d (maximum %d)", ErrTooManyPlayers, c.Players, MaxPlayers)
	}
	return nil
}

// Seat is one player's place at the table.
type Seat struct {
	Number int
	Hole   [HoleCards]poker.Card
	Folded bool
}

// Round owns the deck, the seats and the board for one deal.
type Round struct {
	id     string
	deck   *poker.Deck
	seats  []Seat
	board  []poker.Card
	street Street
	logger *log.Logger
}

// Option configures a Round.
type Option func(*options)

type options struct {
	logger *log.Logger
	ids    *dealid.Generator
}

// WithLogger sets the logger used for street-by-street debug output.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithIDGenerator sets the generator for the round identifier.
func WithIDGenerator(ids *dealid.Generator) Option {
	return func(o *options) { o.ids = ids }
}

// New seats cfg.Players players and deals their hole cards from deck.
func New(cfg Config, deck *poker.Deck, opts ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, errors.New("round requires a deck")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.ids == nil {
		o.ids = dealid.NewGenerator(nil, nil)
	}

	r := &Round{
		id:     o.ids.Generate(),
		deck:   deck,
		seats:  make([]Seat, cfg.Players),
		board:  make([]poker.Card, 0, BoardCards),
		street: PreFlop,
	}
	r.logger = o.logger.WithPrefix("round").With("deal", r.id)

	for i := range r.seats {
		hole, err := deck.Deal(HoleCards)
		if err != nil {
			return nil, fmt.Errorf("dealing seat %d: %w", i, err)
		}
		r.seats[i].Number = i
		copy(r.seats[i].Hole[:], hole)
		r.logger.Debug("Dealt hole cards", "seat", i, "cards", poker.FormatCards(hole))
	}
	return r, nil
}

// ID returns the round identifier.
func (r *Round) ID() string { return r.id }

// Street returns the current street.
func (r *Round) Street() Street { return r.street }

// Board returns a copy of the community cards revealed so far.
func (r *Round) Board() []poker.Card { return slices.Clone(r.board) }

// Seats returns a copy of every seat.
func (r *Round) Seats() []Seat { return slices.Clone(r.seats) }

// Live returns the numbers of seats that have not folded.
func (r *Round) Live() []int {
	var live []int
	for _, s := range r.seats {
		if !s.Folded {
			live = append(live, s.Number)
		}
	}
	return live
}

// Complete reports whether no further cards will be dealt.
func (r *Round) Complete() bool {
	return r.street == River || len(r.Live()) < 2
}

// Advance reveals the next street's community cards.
func (r *Round) Advance() error {
	if r.Complete() {
		return ErrRoundComplete
	}

	next := r.street + 1
	cards, err := r.deck.Deal(cardsFor[next])
	if err != nil {
		return fmt.Errorf("dealing %s: %w", next, err)
	}
	r.board = append(r.board, cards...)
	r.street = next

	r.logger.Debug("Dealt street", "street", next, "cards", poker.FormatCards(cards), "board", poker.FormatCards(r.board))
	return nil
}

// Fold removes a seat from contention.
func (r *Round) Fold(seat int) error {
	if seat < 0 || seat >= len(r.seats) {
		return fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	if r.seats[seat].Folded {
		return fmt.Errorf("%w: %d", ErrSeatFolded, seat)
	}
	if len(r.Live()) == 1 {
		return ErrLastLiveSeat
	}
	r.seats[seat].Folded = true
	r.logger.Debug("Seat folded", "seat", seat, "live", len(r.Live()))
	return nil
}

// Pool returns the seat's hole cards followed by the board.
func (r *Round) Pool(seat int) ([]poker.Card, error) {
	if seat < 0 || seat >= len(r.seats) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	pool := make([]poker.Card, 0, HoleCards+len(r.board))
	pool = append(pool, r.seats[seat].Hole[:]...)
	return append(pool, r.board...), nil
}

// Showdown decides the winners among live seats. A lone live seat wins
// uncontested at any street; otherwise the river must be out.
func (r *Round) Showdown(ctx context.Context) (showdown.Outcome, error) {
	live := r.Live()
	if len(live) == 1 {
		r.logger.Debug("Uncontested win", "seat", live[0])
		return showdown.Outcome{Winners: live, Uncontested: true}, nil
	}
	if r.street != River {
		return showdown.Outcome{}, fmt.Errorf("%w: at %s", ErrNotAtShowdown, r.street)
	}

	entries := make([]showdown.Entry, 0, len(live))
	for _, seat := range live {
		pool, err := r.Pool(seat)
		if err != nil {
			return showdown.Outcome{}, err
		}
		entries = append(entries, showdown.Entry{Seat: seat, Pool: pool})
	}

	out, err := showdown.Decide(ctx, entries)
	if err != nil {
		return showdown.Outcome{}, fmt.Errorf("showdown: %w", err)
	}
	r.logger.Debug("Showdown", "winners", out.Winners, "split", out.Split, "hand", out.Best.String())
	return out, nil
}

// Run deals every remaining street and then holds the showdown.
func (r *Round) Run(ctx context.Context) (showdown.Outcome, error) {
	for !r.Complete() {
		if err := r.Advance(); err != nil {
			return showdown.Outcome{}, err
		}
	}
	return r.Showdown(ctx)
}
