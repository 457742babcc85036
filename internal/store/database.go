package store

import (
	"errors"

	"github.com/calvinwijaya/go-fish-be/internal/db"
	"github.com/calvinwijaya/go-fish-be/internal/game"
)

// DatabaseStore is a database implementation of game storage
type DatabaseStore struct {
	db *db.Database
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.Database) *DatabaseStore {
	return &DatabaseStore{
		db: database,
	}
}

func notFound(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrGameNotFound
	}
	return err
}

// SaveGame saves a game to the database
func (s *DatabaseStore) SaveGame(g *game.GoFishGame) error {
	return s.db.SaveGame(g)
}

// GetGame retrieves a game by ID
func (s *DatabaseStore) GetGame(id string) (*game.GoFishGame, error) {
	g, err := s.db.GetGame(id)
	return g, notFound(err)
}

// GetTurns reads the turn log from the turns table
func (s *DatabaseStore) GetTurns(id string) ([]game.TurnRecord, error) {
	if _, err := s.db.GetGame(id); err != nil {
		return nil, notFound(err)
	}
	return s.db.GetTurns(id)
}

// DeleteGame removes a game from the database
func (s *DatabaseStore) DeleteGame(id string) error {
	return notFound(s.db.DeleteGame(id))
}

// GetAllGames returns all games in the database, newest first
func (s *DatabaseStore) GetAllGames() ([]*game.GoFishGame, error) {
	return s.db.GetAllGames()
}
