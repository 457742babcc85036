package game

import (
	"fmt"
	"strings"
)

type Suit string
type Rank string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "Jack"
	Queen Rank = "Queen"
	King  Rank = "King"
	Ace   Rank = "Ace"
)

// Suits lists the four suits in deck order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists the thirteen ranks in deck order.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

var rankAliases = map[string]Rank{
	"j": Jack,
	"q": Queen,
	"k": King,
	"a": Ace,
}

// ParseRank normalises user input to a rank label. Matching is case
// insensitive and accepts J, Q, K and A for the face cards. Anything else is
// returned trimmed but otherwise untouched; it will simply never match a card.
func ParseRank(s string) Rank {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if r, ok := rankAliases[lower]; ok {
		return r
	}
	for _, r := range Ranks {
		if strings.ToLower(string(r)) == lower {
			return r
		}
	}
	return Rank(s)
}

// IsValid reports whether r is one of the thirteen standard ranks.
func (r Rank) IsValid() bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}
