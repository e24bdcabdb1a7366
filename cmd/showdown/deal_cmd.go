package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/lox/showdown/internal/dealid"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/round"
	"github.com/lox/showdown/poker"
)

type DealCmd struct {
	Players int    `short:"n" help:"Number of seats (overrides table.players)"`
	Seed    *int64 `help:"Random seed for a reproducible deal (overrides table.seed)"`
	Fold    []int  `help:"Seats, numbered from 1, that fold before the flop"`
}

func (c *DealCmd) Run(g *Globals, rt *Runtime) error {
	cfg, logger, err := rt.setup(g)
	if err != nil {
		return err
	}

	players := cfg.Table.Players
	if c.Players != 0 {
		players = c.Players
	}
	seedPtr := cfg.Table.Seed
	if c.Seed != nil {
		seedPtr = c.Seed
	}
	seed := randutil.Seed(seedPtr, rt.Clock)
	rng := randutil.New(seed)

	deck, err := poker.NewDeck(rng)
	if err != nil {
		return err
	}
	r, err := round.New(round.Config{Players: players}, deck,
		round.WithLogger(logger),
		round.WithIDGenerator(dealid.NewGenerator(rt.Clock, rng)),
	)
	if err != nil {
		return err
	}
	logger.Info("Dealing", "deal", r.ID(), "players", players, "seed", seed)

	// The CLI numbers seats from 1 like compare does; the round counts from 0.
	for _, seat := range c.Fold {
		if err := r.Fold(seat - 1); err != nil {
			return err
		}
	}

	out, err := r.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(rt.Out, "%s %s\n", headerStyle.Render("deal"), r.ID())
	fmt.Fprintf(rt.Out, "%s %d\n", headerStyle.Render("seed"), seed)
	if board := r.Board(); len(board) > 0 {
		fmt.Fprintf(rt.Out, "%s %s\n", headerStyle.Render("board"), renderCards(board))
	}
	fmt.Fprintln(rt.Out)

	// Hands is aligned with the live seats that reached showdown.
	hands := make(map[int]poker.Hand, len(out.Hands))
	for i, seat := range r.Live() {
		if i < len(out.Hands) {
			hands[seat] = out.Hands[i]
		}
	}

	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("seat"),
		headerStyle.Render("hole"),
		headerStyle.Render("start"),
		headerStyle.Render("best hand"),
		headerStyle.Render("result"))
	for _, seat := range r.Seats() {
		best := "-"
		if h, ok := hands[seat.Number]; ok {
			best = categoryStyle.Render(h.String())
		}
		result := resultLabel(out, seat.Number)
		if seat.Folded {
			result = "folded"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			seat.Number+1,
			renderCards(seat.Hole[:]),
			poker.CategorizeHoleCards(seat.Hole[0], seat.Hole[1]),
			best,
			result)
	}
	return w.Flush()
}
