package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	// HandSize is the number of cards dealt to each side
	HandSize = 7

	PlayerName   = "Player"
	ComputerName = "Computer"

	welcomeMessage = "Welcome to Go Fish!"
	passMessage    = "Computer has no cards and passes."
)

var (
	ErrNotPlayerTurn   = errors.New("computer reply is still pending")
	ErrNotComputerTurn = errors.New("waiting for the player to ask")
)

type Phase string

const (
	AwaitingPlayerAsk     Phase = "awaitingPlayerAsk"     // Player may ask for a rank
	AwaitingComputerReply Phase = "awaitingComputerReply" // Computer turn is scheduled
)

// TurnRecord is a resolved half-turn as kept in the game log
type TurnRecord struct {
	Seq int `json:"seq"`
	TurnResult
	At time.Time `json:"at"`
}

// View hides what TurnResult.View hides
func (r TurnRecord) View() TurnRecord {
	r.TurnResult = r.TurnResult.View()
	return r
}

type GoFishGame struct {
	ID        string       `json:"id"`
	Player    Participant  `json:"player"`
	Computer  Participant  `json:"computer"`
	DrawPile  *Deck        `json:"drawPile"`
	Phase     Phase        `json:"phase"`
	Message   string       `json:"message"`
	Turns     []TurnRecord `json:"turns"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewGoFishGame shuffles a fresh deck and deals seven cards to each side.
// A nil r uses a time-seeded source.
func NewGoFishGame(r *rand.Rand) *GoFishGame {
	deck := NewDeck()
	deck.Shuffle(r)

	now := time.Now()

	g := &GoFishGame{
		ID:        uuid.New().String(),
		Player:    Participant{Name: PlayerName, Books: []Rank{}},
		Computer:  Participant{Name: ComputerName, Books: []Rank{}},
		Phase:     AwaitingPlayerAsk,
		Message:   welcomeMessage,
		Turns:     []TurnRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.Player.Hand = deck.Deal(HandSize)
	g.Computer.Hand = deck.Deal(HandSize)
	g.DrawPile = deck

	return g
}

// PlayerAsk resolves the player's ask for rank, books the player's hand
// and hands the turn to the computer
func (g *GoFishGame) PlayerAsk(rank Rank) (TurnResult, error) {
	if g.Phase != AwaitingPlayerAsk {
		return TurnResult{}, ErrNotPlayerTurn
	}

	result := TakeTurn(&g.Player, &g.Computer, rank, g.DrawPile)
	result.Books = g.Player.CheckForBooks()

	g.record(result)
	g.Message = result.Message
	g.Phase = AwaitingComputerReply
	return result, nil
}

// ComputerTurn picks a rank uniformly from the distinct ranks in the
// computer's hand and asks the player for it. With an empty hand the
// computer passes.
func (g *GoFishGame) ComputerTurn(r *rand.Rand) (TurnResult, error) {
	if g.Phase != AwaitingComputerReply {
		return TurnResult{}, ErrNotComputerTurn
	}

	var result TurnResult
	ranks := g.Computer.HandRanks()
	if len(ranks) == 0 {
		result = TurnResult{
			Asker:   g.Computer.Name,
			Outcome: OutcomePass,
			Message: passMessage,
		}
	} else {
		rank := ranks[newSource(r).Intn(len(ranks))]
		result = TakeTurn(&g.Computer, &g.Player, rank, g.DrawPile)
		result.Books = g.Computer.CheckForBooks()
		result.Message = "Computer asks for: " + string(rank) + ". " + result.Message
	}

	g.record(result)
	g.Message = result.Message
	g.Phase = AwaitingPlayerAsk
	return result, nil
}

func (g *GoFishGame) record(result TurnResult) {
	now := time.Now()
	g.Turns = append(g.Turns, TurnRecord{
		Seq:        len(g.Turns) + 1,
		TurnResult: result,
		At:         now,
	})
	g.UpdatedAt = now
}

// CardCount returns the number of cards accounted for across both hands,
// the draw pile and all books. It is 52 for any consistent game.
func (g *GoFishGame) CardCount() int {
	n := len(g.Player.Hand) + len(g.Computer.Hand)
	if g.DrawPile != nil {
		n += g.DrawPile.RemainingCards()
	}
	return n + BookSize*(len(g.Player.Books)+len(g.Computer.Books))
}

// LastTurn returns the most recent turn record, if any
func (g *GoFishGame) LastTurn() (TurnRecord, bool) {
	if len(g.Turns) == 0 {
		return TurnRecord{}, false
	}
	return g.Turns[len(g.Turns)-1], true
}

// State is what the view layer gets to see. The computer's cards are
// reduced to a count.
type State struct {
	ID                string    `json:"id"`
	Phase             Phase     `json:"phase"`
	Message           string    `json:"message"`
	PlayerHand        []Card    `json:"playerHand"`
	PlayerBooks       []Rank    `json:"playerBooks"`
	ComputerBooks     []Rank    `json:"computerBooks"`
	ComputerHandCount int       `json:"computerHandCount"`
	DrawPileCount     int       `json:"drawPileCount"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// GetGameState returns a snapshot safe to hand to the view layer
func (g *GoFishGame) GetGameState() State {
	hand := make([]Card, len(g.Player.Hand))
	copy(hand, g.Player.Hand)
	playerBooks := make([]Rank, len(g.Player.Books))
	copy(playerBooks, g.Player.Books)
	computerBooks := make([]Rank, len(g.Computer.Books))
	copy(computerBooks, g.Computer.Books)

	drawPile := 0
	if g.DrawPile != nil {
		drawPile = g.DrawPile.RemainingCards()
	}

	return State{
		ID:                g.ID,
		Phase:             g.Phase,
		Message:           g.Message,
		PlayerHand:        hand,
		PlayerBooks:       playerBooks,
		ComputerBooks:     computerBooks,
		ComputerHandCount: len(g.Computer.Hand),
		DrawPileCount:     drawPile,
		UpdatedAt:         g.UpdatedAt,
	}
}
