package main

import (
	"context"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/lox/showdown/internal/showdown"
	"github.com/lox/showdown/poker"
)

type ClassifyCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. 'AsKsQsJsTs' or 'As Ks Qs Js Ts'"`
}

func (c *ClassifyCmd) Run(g *Globals, rt *Runtime) error {
	if _, _, err := rt.setup(g); err != nil {
		return err
	}
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}
	hand, err := poker.ClassifyCards(cards)
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Out, "%s\n%s\n", handStyle.Render(hand.String()), renderCards(hand.Cards[:]))
	return nil
}

type BestCmd struct {
	Cards []string `arg:"" help:"Pool of 5 to 7 cards, e.g. 'AhKd QsJc9h8d2c'"`
}

func (c *BestCmd) Run(g *Globals, rt *Runtime) error {
	if _, _, err := rt.setup(g); err != nil {
		return err
	}
	pool, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}
	hand, err := poker.BestHand(pool)
	if err != nil {
		return err
	}
	fmt.Fprintf(rt.Out, "%s\n%s\n", handStyle.Render(hand.String()), renderCards(hand.Cards[:]))
	return nil
}

type CompareCmd struct {
	Hands []string `arg:"" help:"Hands to compare: two hole cards each with --board, or full 5 to 7 card pools"`
	Board string   `short:"b" help:"Community cards shared by every hand (e.g. 'Td7s8h2c3d')"`
}

func (c *CompareCmd) Run(g *Globals, rt *Runtime) error {
	_, logger, err := rt.setup(g)
	if err != nil {
		return err
	}

	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	entries := make([]showdown.Entry, len(c.Hands))
	table := slices.Clone(board)
	for i, s := range c.Hands {
		cards, err := poker.ParseCards(s)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		table = append(table, cards...)
		entries[i] = showdown.Entry{Seat: i + 1, Pool: append(cards, board...)}
	}
	// Pools share the board, so a card held twice only shows up across hands.
	if err := poker.ValidateDistinct(table); err != nil {
		return err
	}

	out, err := showdown.Decide(context.Background(), entries)
	if err != nil {
		return err
	}
	logger.Debug("Compared hands", "hands", len(entries), "winners", out.Winners, "split", out.Split)

	if len(board) > 0 {
		fmt.Fprintf(rt.Out, "%s\n%s\n\n", headerStyle.Render("board"), renderCards(board))
	}

	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("#"),
		headerStyle.Render("cards"),
		headerStyle.Render("best hand"),
		headerStyle.Render("result"))
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			e.Seat,
			poker.FormatCards(pocket(e.Pool, board)),
			categoryStyle.Render(out.Hands[i].String()),
			resultLabel(out, e.Seat))
	}
	return w.Flush()
}

// pocket returns the cards a hand brought to the table.
func pocket(pool, board []poker.Card) []poker.Card {
	return pool[:len(pool)-len(board)]
}

func resultLabel(out showdown.Outcome, seat int) string {
	if !slices.Contains(out.Winners, seat) {
		return "-"
	}
	if out.Split {
		return tieStyle.Render("split")
	}
	return winStyle.Render("win")
}
