package store

import (
	"sort"
	"sync"

	"github.com/calvinwijaya/go-fish-be/internal/game"
)

// MemoryStore is an in-memory implementation of game storage
type MemoryStore struct {
	games map[string]*game.GoFishGame
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*game.GoFishGame),
	}
}

// SaveGame saves a game to the store
func (s *MemoryStore) SaveGame(g *game.GoFishGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[g.ID] = g
	return nil
}

// GetGame retrieves a game by ID
func (s *MemoryStore) GetGame(id string) (*game.GoFishGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[id]
	if !exists {
		return nil, ErrGameNotFound
	}

	return g, nil
}

// GetTurns returns a copy of the game's turn log
func (s *MemoryStore) GetTurns(id string) ([]game.TurnRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[id]
	if !exists {
		return nil, ErrGameNotFound
	}

	turns := make([]game.TurnRecord, len(g.Turns))
	copy(turns, g.Turns)
	return turns, nil
}

// DeleteGame removes a game from the store
func (s *MemoryStore) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; !exists {
		return ErrGameNotFound
	}

	delete(s.games, id)
	return nil
}

// GetAllGames returns all games in the store, newest first
func (s *MemoryStore) GetAllGames() ([]*game.GoFishGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*game.GoFishGame, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})

	return games, nil
}
