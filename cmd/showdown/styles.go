package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/showdown/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	redSuit   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	blackSuit = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// renderCards renders cards with their suit symbols, hearts and diamonds in red.
func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackSuit
		if c.Suit == poker.Hearts || c.Suit == poker.Diamonds {
			style = redSuit
		}
		parts[i] = style.Render(c.Pretty())
	}
	return strings.Join(parts, " ")
}

// parseCardArgs joins positional arguments so "Ah Kd" and "AhKd" parse alike.
func parseCardArgs(args []string) ([]poker.Card, error) {
	return poker.ParseCards(strings.Join(args, ""))
}
