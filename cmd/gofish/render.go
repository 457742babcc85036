package main

import (
	"sort"
	"strings"

	"github.com/calvinwijaya/go-fish-be/internal/game"
	"github.com/pterm/pterm"
)

var rankOrder = func() map[game.Rank]int {
	order := make(map[game.Rank]int, len(game.Ranks))
	for i, r := range game.Ranks {
		order[r] = i
	}
	return order
}()

// sortedHand orders cards by rank, then suit, for display
func sortedHand(hand []game.Card) []game.Card {
	out := make([]game.Card, len(hand))
	copy(out, hand)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return rankOrder[out[i].Rank] < rankOrder[out[j].Rank]
		}
		return out[i].Suit < out[j].Suit
	})
	return out
}

func formatBooks(books []game.Rank) string {
	if len(books) == 0 {
		return "-"
	}
	labels := make([]string, len(books))
	for i, b := range books {
		labels[i] = string(b)
	}
	return strings.Join(labels, ", ")
}

// turnLine summarises a half-turn, adding any books it completed
func turnLine(t game.TurnResult) string {
	line := t.Message
	if t.Drawn != nil && t.Asker == game.PlayerName {
		line += " (drew " + t.Drawn.String() + ")"
	}
	if len(t.Books) > 0 {
		line += " Book: " + formatBooks(t.Books)
	}
	return line
}

func handBox(hand []game.Card) string {
	lines := make([]string, 0, len(hand))
	for _, c := range sortedHand(hand) {
		lines = append(lines, c.String())
	}
	if len(lines) == 0 {
		lines = append(lines, pterm.Gray("no cards"))
	}
	return pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(pterm.LightCyan("|YOUR HAND|")).WithTitleTopLeft().
		Sprint(strings.Join(lines, "\n"))
}

func tableBox(s game.State) string {
	info := pterm.Sprintfln("Your books: %s", formatBooks(s.PlayerBooks)) +
		pterm.Sprintfln("Computer books: %s", formatBooks(s.ComputerBooks)) +
		pterm.Sprintfln("Computer holds %d card(s)", s.ComputerHandCount) +
		pterm.Sprintf("Cards in draw pile: %d", s.DrawPileCount)
	return pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(pterm.LightYellow("|TABLE|")).WithTitleTopCenter().
		Sprint(info)
}

// printState renders the player's view; the computer's cards stay hidden
func printState(s game.State) {
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: handBox(s.PlayerHand)}, {Data: tableBox(s)}},
	}).Render()
	pterm.Println(pterm.LightGreen(s.Message))
}
