package game

// BookSize is the number of cards of one rank that make a book
const BookSize = 4

// CheckForBooks removes every complete book from hand and appends its rank to
// books. Ranks are booked in the order they first appear in the hand. The
// remaining cards keep their relative order.
func CheckForBooks(hand []Card, books []Rank) ([]Card, []Rank) {
	counts := make(map[Rank]int)
	var order []Rank
	for _, card := range hand {
		if counts[card.Rank] == 0 {
			order = append(order, card.Rank)
		}
		counts[card.Rank]++
	}

	complete := make(map[Rank]bool)
	for _, rank := range order {
		if counts[rank] == BookSize {
			complete[rank] = true
			books = append(books, rank)
		}
	}
	if len(complete) == 0 {
		return hand, books
	}

	remaining := make([]Card, 0, len(hand)-len(complete)*BookSize)
	for _, card := range hand {
		if !complete[card.Rank] {
			remaining = append(remaining, card)
		}
	}
	return remaining, books
}

// Participant is one side of the table: the human player or the computer
type Participant struct {
	Name  string `json:"name"`
	Hand  []Card `json:"hand"`
	Books []Rank `json:"books"`
}

// CheckForBooks extracts completed books from the participant's hand and
// returns the ranks booked by this call
func (p *Participant) CheckForBooks() []Rank {
	before := len(p.Books)
	p.Hand, p.Books = CheckForBooks(p.Hand, p.Books)
	if len(p.Books) == before {
		return nil
	}
	booked := make([]Rank, len(p.Books)-before)
	copy(booked, p.Books[before:])
	return booked
}

// HandRanks returns the distinct ranks in the participant's hand, in order
// of first appearance
func (p *Participant) HandRanks() []Rank {
	seen := make(map[Rank]bool)
	var ranks []Rank
	for _, card := range p.Hand {
		if !seen[card.Rank] {
			seen[card.Rank] = true
			ranks = append(ranks, card.Rank)
		}
	}
	return ranks
}
