package game

import (
	"math/rand"
	"time"
)

type Deck struct {
	Cards []Card `json:"cards"`
}

// NewDeck creates a new standard 52-card deck, suit by suit, 2 through Ace
func NewDeck() *Deck {
	deck := &Deck{Cards: make([]Card, 0, len(Suits)*len(Ranks))}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck.Cards = append(deck.Cards, Card{Rank: rank, Suit: suit})
		}
	}

	return deck
}

// newSource returns r, or a time-seeded source when r is nil
func newSource(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle(r *rand.Rand) {
	r = newSource(r)

	// Fisher-Yates shuffle algorithm
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Deal removes and returns up to n cards from the front of the deck
func (d *Deck) Deal(n int) []Card {
	if n > len(d.Cards) {
		n = len(d.Cards)
	}

	dealt := make([]Card, n)
	copy(dealt, d.Cards[:n])
	d.Cards = d.Cards[n:]
	return dealt
}

// DrawCard removes and returns the top card (the end of the slice)
func (d *Deck) DrawCard() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}

	last := len(d.Cards) - 1
	card := d.Cards[last]
	d.Cards = d.Cards[:last]
	return card, true
}

// RemainingCards returns the number of cards left in the deck
func (d *Deck) RemainingCards() int {
	return len(d.Cards)
}
