package game

import "fmt"

type Outcome string

const (
	OutcomeCollected Outcome = "collected" // Responder handed over matching cards
	OutcomeLuckyDraw Outcome = "luckyDraw" // Drew the rank that was asked for
	OutcomeGoFish    Outcome = "goFish"    // Drew some other card
	OutcomeNoCards   Outcome = "noCards"   // No match and the draw pile is empty
	OutcomePass      Outcome = "pass"      // Asker had nothing to ask with
)

const (
	msgLuckyDraw = "You drew the card you asked for!"
	msgGoFish    = "Go Fish!"
	msgNoCards   = "No cards left to draw!"
)

// TurnResult describes one resolved ask
type TurnResult struct {
	Asker     string  `json:"asker"`
	Rank      Rank    `json:"rank"`
	Outcome   Outcome `json:"outcome"`
	Collected int     `json:"collected,omitempty"`
	Drawn     *Card   `json:"drawn,omitempty"`
	Books     []Rank  `json:"books,omitempty"`
	Message   string  `json:"message"`
}

// View returns the turn as the player may see it. Cards the computer drew
// stay hidden.
func (t TurnResult) View() TurnResult {
	if t.Asker == ComputerName {
		t.Drawn = nil
	}
	return t
}

// TakeTurn applies one ask: asker requests rank from responder, falling back
// to the draw pile. Book lists are never touched here.
func TakeTurn(asker, responder *Participant, rank Rank, pile *Deck) TurnResult {
	result := TurnResult{Asker: asker.Name, Rank: rank}

	kept := make([]Card, 0, len(responder.Hand))
	var matching []Card
	for _, card := range responder.Hand {
		if card.Rank == rank {
			matching = append(matching, card)
		} else {
			kept = append(kept, card)
		}
	}

	if len(matching) > 0 {
		asker.Hand = append(asker.Hand, matching...)
		responder.Hand = kept
		result.Outcome = OutcomeCollected
		result.Collected = len(matching)
		result.Message = fmt.Sprintf("%d card(s) collected!", len(matching))
		return result
	}

	card, ok := pile.DrawCard()
	if !ok {
		result.Outcome = OutcomeNoCards
		result.Message = msgNoCards
		return result
	}

	asker.Hand = append(asker.Hand, card)
	result.Drawn = &card
	if card.Rank == rank {
		result.Outcome = OutcomeLuckyDraw
		result.Message = msgLuckyDraw
	} else {
		result.Outcome = OutcomeGoFish
		result.Message = msgGoFish
	}
	return result
}
