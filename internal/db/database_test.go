package db

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/calvinwijaya/go-fish-be/internal/game"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	d, err := NewDatabase(DriverSQLite, MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNewDatabase_RejectsUnknownDriver(t *testing.T) {
	if _, err := NewDatabase("mysql", "x"); err == nil {
		t.Fatal("expected unsupported driver error")
	}
	if _, err := NewDatabase(DriverPostgres, ""); err == nil {
		t.Fatal("expected missing dsn error")
	}
}

func TestDatabase_SaveAndGetGame(t *testing.T) {
	d := newTestDatabase(t)
	g := game.NewGoFishGame(rand.New(rand.NewSource(1)))

	if err := d.SaveGame(g); err != nil {
		t.Fatal(err)
	}
	got, err := d.GetGame(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != g.ID || got.Phase != g.Phase || got.CardCount() != 52 {
		t.Fatalf("round trip mismatch: %+v", got.GetGameState())
	}
	if len(got.Player.Hand) != game.HandSize || got.Player.Hand[0] != g.Player.Hand[0] {
		t.Fatal("player hand not restored")
	}

	if _, err := d.GetGame("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDatabase_TurnLogAppendsOnce(t *testing.T) {
	d := newTestDatabase(t)
	g := game.NewGoFishGame(rand.New(rand.NewSource(2)))

	if _, err := g.PlayerAsk(g.Player.Hand[0].Rank); err != nil {
		t.Fatal(err)
	}
	if err := d.SaveGame(g); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ComputerTurn(rand.New(rand.NewSource(3))); err != nil {
		t.Fatal(err)
	}
	if err := d.SaveGame(g); err != nil {
		t.Fatal(err)
	}

	turns, err := d.GetTurns(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Asker != game.PlayerName || turns[1].Asker != game.ComputerName {
		t.Fatalf("unexpected askers %s, %s", turns[0].Asker, turns[1].Asker)
	}
	if turns[1].Message != g.Turns[1].Message {
		t.Fatalf("expected message %q, got %q", g.Turns[1].Message, turns[1].Message)
	}

	stored, err := d.GetGame(g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Phase != game.AwaitingPlayerAsk {
		t.Fatalf("expected updated phase, got %s", stored.Phase)
	}
}

func TestDatabase_DeleteGame(t *testing.T) {
	d := newTestDatabase(t)
	g := game.NewGoFishGame(nil)
	if err := d.SaveGame(g); err != nil {
		t.Fatal(err)
	}

	all, err := d.GetAllGames()
	if err != nil || len(all) != 1 {
		t.Fatalf("expected 1 game, got %d (%v)", len(all), err)
	}

	if err := d.DeleteGame(g.ID); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteGame(g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	turns, err := d.GetTurns(g.ID)
	if err != nil || len(turns) != 0 {
		t.Fatalf("expected no turns, got %d (%v)", len(turns), err)
	}
}
