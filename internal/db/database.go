package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calvinwijaya/go-fish-be/internal/game"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	// MemoryDSN keeps the SQLite database inside the process. It only
	// lives as long as its single connection.
	MemoryDSN = ":memory:"
)

// ErrNotFound is returned when no game row matches
var ErrNotFound = errors.New("game not found")

type Database struct {
	db *sql.DB
}

// NewDatabase opens a connection using one of the supported drivers and
// creates the tables if needed
func NewDatabase(driver, dsn string) (*Database, error) {
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = MemoryDSN
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres requires a dsn")
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// Open database connection
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	// Set connection parameters
	if driver == DriverSQLite {
		// One long-lived connection so an in-memory database is not dropped
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}

	// Initialize database tables
	if err := initTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Database{db: db}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	// Games table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			game_state TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating games table: %w", err)
	}

	// Turn log table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS turns (
			game_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			asker TEXT NOT NULL,
			rank TEXT NOT NULL,
			outcome TEXT NOT NULL,
			collected INTEGER NOT NULL,
			drawn TEXT,
			books TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (game_id, seq),
			FOREIGN KEY (game_id) REFERENCES games (id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating turns table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// SaveGame upserts the game snapshot and appends any turns not stored yet
func (d *Database) SaveGame(g *game.GoFishGame) error {
	// Convert game state to JSON
	gameState, err := json.Marshal(g)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO games (id, phase, created_at, updated_at, game_state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET phase = $2, updated_at = $4, game_state = $5
	`, g.ID, string(g.Phase), g.CreatedAt, g.UpdatedAt, string(gameState))
	if err != nil {
		return fmt.Errorf("error saving game %s: %w", g.ID, err)
	}

	for _, t := range g.Turns {
		drawn, books, err := encodeTurn(t)
		if err != nil {
			return fmt.Errorf("error encoding turn %d of game %s: %w", t.Seq, g.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO turns (game_id, seq, asker, rank, outcome, collected, drawn, books, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (game_id, seq) DO NOTHING
		`, g.ID, t.Seq, t.Asker, string(t.Rank), string(t.Outcome), t.Collected, drawn, books, t.Message, t.At)
		if err != nil {
			return fmt.Errorf("error saving turn %d of game %s: %w", t.Seq, g.ID, err)
		}
	}

	return tx.Commit()
}

// GetGame retrieves a game by ID
func (d *Database) GetGame(id string) (*game.GoFishGame, error) {
	var gameState string

	err := d.db.QueryRow(`
		SELECT game_state FROM games WHERE id = $1
	`, id).Scan(&gameState)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var g game.GoFishGame
	if err := json.Unmarshal([]byte(gameState), &g); err != nil {
		return nil, fmt.Errorf("error decoding game %s: %w", id, err)
	}

	return &g, nil
}

// GetAllGames returns all games in the database, newest first
func (d *Database) GetAllGames() ([]*game.GoFishGame, error) {
	rows, err := d.db.Query(`
		SELECT game_state FROM games ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*game.GoFishGame{}
	for rows.Next() {
		var gameState string
		if err := rows.Scan(&gameState); err != nil {
			return nil, err
		}

		var g game.GoFishGame
		if err := json.Unmarshal([]byte(gameState), &g); err != nil {
			return nil, err
		}

		games = append(games, &g)
	}

	return games, rows.Err()
}

// DeleteGame removes a game and its turn log
func (d *Database) DeleteGame(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM turns WHERE game_id = $1", id); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM games WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// GetTurns returns the turn log of a game in order
func (d *Database) GetTurns(gameID string) ([]game.TurnRecord, error) {
	rows, err := d.db.Query(`
		SELECT seq, asker, rank, outcome, collected, drawn, books, message, created_at
		FROM turns WHERE game_id = $1 ORDER BY seq
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []game.TurnRecord{}
	for rows.Next() {
		var t game.TurnRecord
		var rank, outcome, books string
		var drawn sql.NullString
		if err := rows.Scan(&t.Seq, &t.Asker, &rank, &outcome, &t.Collected, &drawn, &books, &t.Message, &t.At); err != nil {
			return nil, err
		}
		t.Rank = game.Rank(rank)
		t.Outcome = game.Outcome(outcome)
		if drawn.Valid {
			t.Drawn = &game.Card{}
			if err := json.Unmarshal([]byte(drawn.String), t.Drawn); err != nil {
				return nil, fmt.Errorf("error decoding turn %d of game %s: %w", t.Seq, gameID, err)
			}
		}
		if err := json.Unmarshal([]byte(books), &t.Books); err != nil {
			return nil, fmt.Errorf("error decoding turn %d of game %s: %w", t.Seq, gameID, err)
		}
		if len(t.Books) == 0 {
			t.Books = nil
		}
		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// encodeTurn turns the drawn card and new books of a turn into column
// values. A turn without a draw stores NULL.
func encodeTurn(t game.TurnRecord) (sql.NullString, string, error) {
	var drawn sql.NullString
	if t.Drawn != nil {
		b, err := json.Marshal(t.Drawn)
		if err != nil {
			return drawn, "", err
		}
		drawn = sql.NullString{String: string(b), Valid: true}
	}

	books := t.Books
	if books == nil {
		books = []game.Rank{}
	}
	b, err := json.Marshal(books)
	if err != nil {
		return drawn, "", err
	}
	return drawn, string(b), nil
}
