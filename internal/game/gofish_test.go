package game

import (
	"math/rand"
	"testing"
)

func countRank(hand []Card, rank Rank) int {
	n := 0
	for _, c := range hand {
		if c.Rank == rank {
			n++
		}
	}
	return n
}

func TestNewGoFishGame_Deal(t *testing.T) {
	g := NewGoFishGame(rand.New(rand.NewSource(7)))

	if g.ID == "" {
		t.Fatal("expected a game id")
	}
	if len(g.Player.Hand) != HandSize || len(g.Computer.Hand) != HandSize {
		t.Fatalf("expected 7/7, got %d/%d", len(g.Player.Hand), len(g.Computer.Hand))
	}
	if g.DrawPile.RemainingCards() != 52-2*HandSize {
		t.Fatalf("expected 38 in draw pile, got %d", g.DrawPile.RemainingCards())
	}
	if len(g.Player.Books) != 0 || len(g.Computer.Books) != 0 {
		t.Fatal("expected empty books")
	}
	if g.Phase != AwaitingPlayerAsk {
		t.Fatalf("expected %s, got %s", AwaitingPlayerAsk, g.Phase)
	}
	if g.CardCount() != 52 {
		t.Fatalf("expected 52 cards accounted for, got %d", g.CardCount())
	}
}

func TestGoFishGame_PhaseGuards(t *testing.T) {
	g := NewGoFishGame(rand.New(rand.NewSource(1)))

	if _, err := g.ComputerTurn(nil); err != ErrNotComputerTurn {
		t.Fatalf("expected ErrNotComputerTurn, got %v", err)
	}
	if _, err := g.PlayerAsk(g.Player.Hand[0].Rank); err != nil {
		t.Fatal(err)
	}
	if g.Phase != AwaitingComputerReply {
		t.Fatalf("expected %s, got %s", AwaitingComputerReply, g.Phase)
	}
	if _, err := g.PlayerAsk(Ace); err != ErrNotPlayerTurn {
		t.Fatalf("expected ErrNotPlayerTurn, got %v", err)
	}
	if _, err := g.ComputerTurn(rand.New(rand.NewSource(2))); err != nil {
		t.Fatal(err)
	}
	if g.Phase != AwaitingPlayerAsk {
		t.Fatalf("expected %s, got %s", AwaitingPlayerAsk, g.Phase)
	}
	if len(g.Turns) != 2 || g.Turns[0].Seq != 1 || g.Turns[1].Asker != ComputerName {
		t.Fatalf("unexpected turn log %+v", g.Turns)
	}
}

func TestGoFishGame_CardCountHoldsOverManyTurns(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	g := NewGoFishGame(r)

	for i := 0; i < 60; i++ {
		rank := Ranks[r.Intn(len(Ranks))]
		if _, err := g.PlayerAsk(rank); err != nil {
			t.Fatal(err)
		}
		if g.CardCount() != 52 {
			t.Fatalf("turn %d: player ask broke card count: %d", i, g.CardCount())
		}
		if _, err := g.ComputerTurn(r); err != nil {
			t.Fatal(err)
		}
		if g.CardCount() != 52 {
			t.Fatalf("turn %d: computer turn broke card count: %d", i, g.CardCount())
		}
		for _, p := range []Participant{g.Player, g.Computer} {
			for _, rank := range p.HandRanks() {
				if countRank(p.Hand, rank) == BookSize {
					t.Fatalf("turn %d: %s kept a full book of %s", i, p.Name, rank)
				}
			}
		}
	}
}

func TestGoFishGame_ComputerAsksForRankItHolds(t *testing.T) {
	g := NewGoFishGame(rand.New(rand.NewSource(3)))
	g.Phase = AwaitingComputerReply
	held := map[Rank]bool{}
	for _, rank := range g.Computer.HandRanks() {
		held[rank] = true
	}

	res, err := g.ComputerTurn(rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	if !held[res.Rank] {
		t.Fatalf("computer asked for %s, which it did not hold", res.Rank)
	}
	if res.Asker != ComputerName {
		t.Fatalf("expected computer to ask, got %s", res.Asker)
	}
	want := "Computer asks for: " + string(res.Rank) + ". "
	if len(res.Message) <= len(want) || res.Message[:len(want)] != want {
		t.Fatalf("unexpected message %q", res.Message)
	}
}

func TestGoFishGame_ComputerPassesWithEmptyHand(t *testing.T) {
	g := NewGoFishGame(rand.New(rand.NewSource(5)))
	g.DrawPile.Cards = append(g.DrawPile.Cards, g.Computer.Hand...)
	g.Computer.Hand = nil
	g.Phase = AwaitingComputerReply
	pile := g.DrawPile.RemainingCards()

	res, err := g.ComputerTurn(nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomePass || g.Message != "Computer has no cards and passes." {
		t.Fatalf("expected a pass, got %+v", res)
	}
	if g.DrawPile.RemainingCards() != pile || len(g.Player.Hand) != HandSize {
		t.Fatal("pass must not move cards")
	}
	if g.Phase != AwaitingPlayerAsk {
		t.Fatalf("expected %s, got %s", AwaitingPlayerAsk, g.Phase)
	}
}

// Finds a deal where one rank is split between the two hands with all four
// cards out of the draw pile, then asks for it.
func TestGoFishGame_PlayerCompletesBookFromComputer(t *testing.T) {
	for seed := int64(1); seed < 5000; seed++ {
		g := NewGoFishGame(rand.New(rand.NewSource(seed)))

		var target Rank
		for _, rank := range Ranks {
			p, c := countRank(g.Player.Hand, rank), countRank(g.Computer.Hand, rank)
			if p > 0 && c > 0 && p+c == BookSize {
				target = rank
				break
			}
		}
		if target == "" {
			continue
		}

		handBefore := len(g.Player.Hand)
		taken := countRank(g.Computer.Hand, target)
		res, err := g.PlayerAsk(target)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeCollected || res.Collected != taken {
			t.Fatalf("expected %d collected, got %+v", taken, res)
		}
		if len(g.Player.Books) != 1 || g.Player.Books[0] != target {
			t.Fatalf("expected player books [%s], got %v", target, g.Player.Books)
		}
		if len(res.Books) != 1 || res.Books[0] != target {
			t.Fatalf("expected turn to report book %s, got %v", target, res.Books)
		}
		if countRank(g.Player.Hand, target) != 0 {
			t.Fatal("book cards left in player hand")
		}
		if len(g.Player.Hand) != handBefore+taken-BookSize {
			t.Fatalf("expected %d cards, got %d", handBefore+taken-BookSize, len(g.Player.Hand))
		}
		if g.CardCount() != 52 {
			t.Fatalf("expected 52, got %d", g.CardCount())
		}
		return
	}
	t.Fatal("no seed produced a split four-of-a-kind")
}

func TestGoFishGame_StateHidesComputerHand(t *testing.T) {
	g := NewGoFishGame(rand.New(rand.NewSource(11)))
	s := g.GetGameState()

	if s.ComputerHandCount != HandSize || s.DrawPileCount != 38 || len(s.PlayerHand) != HandSize {
		t.Fatalf("unexpected state %+v", s)
	}
	s.PlayerHand[0] = Card{Rank: "x", Suit: "y"}
	if g.Player.Hand[0].Rank == "x" {
		t.Fatal("state must not alias the player's hand")
	}
}
