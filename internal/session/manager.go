// Package session runs Go Fish games on top of a store. A player ask is
// resolved immediately; the computer's reply is scheduled after a delay and
// can be cancelled until it fires.
package session

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/calvinwijaya/go-fish-be/internal/game"
	"github.com/calvinwijaya/go-fish-be/internal/store"
)

// DefaultComputerDelay is the pause before the computer answers
const DefaultComputerDelay = time.Second

// ErrClosed is returned once the manager has been shut down
var ErrClosed = errors.New("session manager closed")

// Event is published after every half-turn. Turn is the player's view.
type Event struct {
	GameID string          `json:"gameId"`
	Turn   game.TurnResult `json:"turn"`
	State  game.State      `json:"state"`
}

// Notifier receives game events. It is called without the manager lock
// held, from the request goroutine for player asks and from the timer
// goroutine for computer replies.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type Option func(*Manager)

// WithNotifier registers the listener for turn events
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithRand fixes the random source used for shuffling and computer picks
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

type Manager struct {
	store    store.Store
	delay    time.Duration
	notifier Notifier

	mu      sync.Mutex
	rng     *rand.Rand
	pending map[string]*time.Timer
	closed  bool
}

func NewManager(s store.Store, delay time.Duration, opts ...Option) *Manager {
	m := &Manager{
		store:   s,
		delay:   delay,
		pending: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return m
}

// NewGame deals a new game and saves it
func (m *Manager) NewGame() (game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return game.State{}, ErrClosed
	}

	g := game.NewGoFishGame(m.rng)
	if err := m.store.SaveGame(g); err != nil {
		return game.State{}, err
	}
	return g.GetGameState(), nil
}

// Get returns the view of a game
func (m *Manager) Get(id string) (game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.store.GetGame(id)
	if err != nil {
		return game.State{}, err
	}
	return g.GetGameState(), nil
}

// List returns the view of every stored game
func (m *Manager) List() ([]game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	games, err := m.store.GetAllGames()
	if err != nil {
		return nil, err
	}
	states := make([]game.State, 0, len(games))
	for _, g := range games {
		states = append(states, g.GetGameState())
	}
	return states, nil
}

// History returns the turn log of a game with the computer's draws hidden
func (m *Manager) History(id string) ([]game.TurnRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns, err := m.store.GetTurns(id)
	if err != nil {
		return nil, err
	}
	views := make([]game.TurnRecord, len(turns))
	for i, t := range turns {
		views[i] = t.View()
	}
	return views, nil
}

// Pending reports whether a computer reply is scheduled for the game
func (m *Manager) Pending(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.pending[id]
	return ok
}

// Ask resolves the player's ask for rank and schedules the computer's
// reply. While a reply is pending it fails with game.ErrNotPlayerTurn.
// The rank goes through game.ParseRank first, so "queen" and "q" both
// ask for Queen; any other text is asked for verbatim and matches nothing.
func (m *Manager) Ask(id, rank string) (game.TurnResult, game.State, error) {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		return game.TurnResult{}, game.State{}, ErrClosed
	}

	g, err := m.store.GetGame(id)
	if err != nil {
		m.mu.Unlock()
		return game.TurnResult{}, game.State{}, err
	}

	result, err := g.PlayerAsk(game.ParseRank(rank))
	if err != nil {
		// A game restored mid-turn has no timer yet
		if errors.Is(err, game.ErrNotPlayerTurn) {
			m.scheduleLocked(id)
		}
		m.mu.Unlock()
		return game.TurnResult{}, game.State{}, err
	}

	if err := m.store.SaveGame(g); err != nil {
		m.mu.Unlock()
		return game.TurnResult{}, game.State{}, err
	}
	m.scheduleLocked(id)
	state := g.GetGameState()
	m.mu.Unlock()

	view := result.View()
	m.notify(Event{GameID: id, Turn: view, State: state})
	return view, state, nil
}

func (m *Manager) scheduleLocked(id string) {
	if _, ok := m.pending[id]; ok {
		return
	}
	m.pending[id] = time.AfterFunc(m.delay, func() { m.computerTurn(id) })
}

func (m *Manager) computerTurn(id string) {
	m.mu.Lock()

	delete(m.pending, id)
	if m.closed {
		m.mu.Unlock()
		return
	}

	g, err := m.store.GetGame(id)
	if err != nil {
		m.mu.Unlock()
		if !errors.Is(err, store.ErrGameNotFound) {
			log.Printf("computer turn for game %s: %v", id, err)
		}
		return
	}

	result, err := g.ComputerTurn(m.rng)
	if err != nil {
		m.mu.Unlock()
		return
	}
	if err := m.store.SaveGame(g); err != nil {
		m.mu.Unlock()
		log.Printf("saving computer turn for game %s: %v", id, err)
		return
	}
	state := g.GetGameState()
	m.mu.Unlock()

	m.notify(Event{GameID: id, Turn: result.View(), State: state})
}

func (m *Manager) notify(e Event) {
	if m.notifier != nil {
		m.notifier.Notify(e)
	}
}

// Quit cancels any pending computer reply and removes the game
func (m *Manager) Quit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.pending[id]; ok {
		t.Stop()
		delete(m.pending, id)
	}
	return m.store.DeleteGame(id)
}

// Close stops every pending computer reply. Later calls fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.pending {
		t.Stop()
		delete(m.pending, id)
	}
	m.closed = true
}
