package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/calvinwijaya/go-fish-be/internal/game"
	"github.com/calvinwijaya/go-fish-be/internal/session"
	"github.com/calvinwijaya/go-fish-be/internal/store"
	"github.com/gorilla/mux"
)

// Handlers contains all the API handlers
type Handlers struct {
	sessions *session.Manager
	hub      *Hub
}

// NewHandlers creates a new instance of Handlers
func NewHandlers(sessions *session.Manager, hub *Hub) *Handlers {
	return &Handlers{
		sessions: sessions,
		hub:      hub,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Game endpoints
	r.HandleFunc("/api/game/new", h.NewGame).Methods("POST")
	r.HandleFunc("/api/game/list", h.ListGames).Methods("GET")
	r.HandleFunc("/api/game/{id}/ask", h.Ask).Methods("POST")
	r.HandleFunc("/api/game/{id}/quit", h.Quit).Methods("POST")
	r.HandleFunc("/api/game/{id}/history", h.History).Methods("GET")
	r.HandleFunc("/api/game/{id}", h.GetGame).Methods("GET")

	r.HandleFunc("/api/rules", h.Rules).Methods("GET")

	// WebSocket endpoint
	if h.hub != nil {
		r.HandleFunc("/ws", h.hub.WebSocketHandler)
	}
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// sessionError maps session and store errors onto HTTP statuses
func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		errorResponse(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, game.ErrNotPlayerTurn):
		errorResponse(w, http.StatusConflict, "Wait for the computer to reply")
	case errors.Is(err, session.ErrClosed):
		errorResponse(w, http.StatusServiceUnavailable, "Server is shutting down")
	default:
		log.Printf("Internal error: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// NewGame deals a new game against the computer
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.NewGame()
	if err != nil {
		sessionError(w, err)
		return
	}

	response(w, http.StatusCreated, state)
}

// ListGames returns the view of every game in the store
func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	states, err := h.sessions.List()
	if err != nil {
		sessionError(w, err)
		return
	}

	response(w, http.StatusOK, states)
}

// GetGame returns the current state of a game
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	state, err := h.sessions.Get(gameID)
	if err != nil {
		sessionError(w, err)
		return
	}

	response(w, http.StatusOK, state)
}

// Ask lets the player ask the computer for a rank
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		Rank string `json:"rank"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Rank) == "" {
		errorResponse(w, http.StatusBadRequest, "Rank is required")
		return
	}

	turn, state, err := h.sessions.Ask(gameID, req.Rank)
	if err != nil {
		sessionError(w, err)
		return
	}

	response(w, http.StatusOK, map[string]interface{}{
		"turn": turn,
		"game": state,
	})
}

// History returns the turn log of a game
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	turns, err := h.sessions.History(gameID)
	if err != nil {
		sessionError(w, err)
		return
	}

	response(w, http.StatusOK, turns)
}

// Quit ends a game and cancels a pending computer reply
func (h *Handlers) Quit(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := h.sessions.Quit(gameID); err != nil {
		sessionError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToGame(gameID, Message{
			Type:   "gameEnded",
			GameID: gameID,
		})
	}

	response(w, http.StatusOK, map[string]string{
		"success": "true",
		"message": "Game ended",
	})
}

// Rules describes the deck so a view can offer rank choices
func (h *Handlers) Rules(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string]interface{}{
		"ranks":    game.Ranks,
		"suits":    game.Suits,
		"handSize": game.HandSize,
		"bookSize": game.BookSize,
	})
}
