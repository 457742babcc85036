package store

import (
	"errors"

	"github.com/calvinwijaya/go-fish-be/internal/game"
)

// ErrGameNotFound is returned by every Store when no game has the given ID
var ErrGameNotFound = errors.New("game not found")

// Store defines the interface for game storage
type Store interface {
	// SaveGame saves a game to the store
	SaveGame(g *game.GoFishGame) error

	// GetGame retrieves a game by ID
	GetGame(id string) (*game.GoFishGame, error)

	// GetTurns returns the turn log of a game
	GetTurns(id string) ([]game.TurnRecord, error)

	// DeleteGame removes a game from the store
	DeleteGame(id string) error

	// GetAllGames returns all games in the store
	GetAllGames() ([]*game.GoFishGame, error)
}
