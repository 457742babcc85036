package store

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/calvinwijaya/go-fish-be/internal/db"
	"github.com/calvinwijaya/go-fish-be/internal/game"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	database, err := db.NewDatabase(db.DriverSQLite, db.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	return map[string]Store{
		"memory":   NewMemoryStore(),
		"database": NewDatabaseStore(database),
	}
}

func sameBooks(a, b []game.Rank) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStore_GameLifecycle(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			g := game.NewGoFishGame(rand.New(rand.NewSource(1)))
			if err := s.SaveGame(g); err != nil {
				t.Fatal(err)
			}

			// Nothing matches a made-up rank, so the player draws
			if _, err := g.PlayerAsk(game.Rank("banana")); err != nil {
				t.Fatal(err)
			}
			if err := s.SaveGame(g); err != nil {
				t.Fatal(err)
			}
			if _, err := g.ComputerTurn(rand.New(rand.NewSource(2))); err != nil {
				t.Fatal(err)
			}
			if _, err := g.PlayerAsk(g.Player.Hand[0].Rank); err != nil {
				t.Fatal(err)
			}
			if err := s.SaveGame(g); err != nil {
				t.Fatal(err)
			}

			got, err := s.GetGame(g.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Phase != game.AwaitingComputerReply {
				t.Fatalf("expected saved phase, got %s", got.Phase)
			}

			turns, err := s.GetTurns(g.ID)
			if err != nil {
				t.Fatal(err)
			}
			if len(turns) != 3 || turns[0].Rank != "banana" || turns[0].Outcome != game.OutcomeGoFish {
				t.Fatalf("expected a go fish ask first, got %+v", turns)
			}
			for i, turn := range turns {
				want := g.Turns[i]
				if (turn.Drawn == nil) != (want.Drawn == nil) || (turn.Drawn != nil && *turn.Drawn != *want.Drawn) {
					t.Fatalf("turn %d: expected drawn %v, got %v", i+1, want.Drawn, turn.Drawn)
				}
				if !sameBooks(turn.Books, want.Books) {
					t.Fatalf("turn %d: expected books %v, got %v", i+1, want.Books, turn.Books)
				}
				if turn.Collected != want.Collected || turn.Message != want.Message {
					t.Fatalf("turn %d: expected %+v, got %+v", i+1, want.TurnResult, turn.TurnResult)
				}
			}

			all, err := s.GetAllGames()
			if err != nil || len(all) != 1 {
				t.Fatalf("expected 1 game, got %d (%v)", len(all), err)
			}

			if err := s.DeleteGame(g.ID); err != nil {
				t.Fatal(err)
			}
			if _, err := s.GetGame(g.ID); !errors.Is(err, ErrGameNotFound) {
				t.Fatalf("expected ErrGameNotFound, got %v", err)
			}
			if _, err := s.GetTurns(g.ID); !errors.Is(err, ErrGameNotFound) {
				t.Fatalf("expected ErrGameNotFound for turns, got %v", err)
			}
			if err := s.DeleteGame(g.ID); !errors.Is(err, ErrGameNotFound) {
				t.Fatalf("expected ErrGameNotFound on delete, got %v", err)
			}
		})
	}
}

func TestStore_GetAllGamesNewestFirst(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
			var ids []string
			for i := 0; i < 5; i++ {
				g := game.NewGoFishGame(rand.New(rand.NewSource(int64(i))))
				g.CreatedAt = base.Add(time.Duration(i) * time.Minute)
				g.UpdatedAt = g.CreatedAt
				if err := s.SaveGame(g); err != nil {
					t.Fatal(err)
				}
				ids = append(ids, g.ID)
			}

			all, err := s.GetAllGames()
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != len(ids) {
				t.Fatalf("expected %d games, got %d", len(ids), len(all))
			}
			for i, g := range all {
				if want := ids[len(ids)-1-i]; g.ID != want {
					t.Fatalf("position %d: expected %s, got %s", i, want, g.ID)
				}
			}
		})
	}
}
