package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/calvinwijaya/go-fish-be/internal/game"
	"github.com/calvinwijaya/go-fish-be/internal/session"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the REST routes
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Message represents a WebSocket message
type Message struct {
	Type   string      `json:"type"`
	GameID string      `json:"gameId,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client watching one game
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	gameID string
	hub    *Hub
}

// Hub maintains the set of active clients and pushes game events to them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	games      map[string]map[*Client]bool
	quit       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		games:      make(map[string]map[*Client]bool),
		quit:       make(chan struct{}),
	}
}

// Run starts the hub. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true

			// Add to game map
			if client.gameID != "" {
				if _, exists := h.games[client.gameID]; !exists {
					h.games[client.gameID] = make(map[*Client]bool)
				}
				h.games[client.gameID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop disconnects every client and ends Run
func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	// Remove from game map
	if client.gameID != "" && h.games[client.gameID] != nil {
		delete(h.games[client.gameID], client)
		// Clean up empty games
		if len(h.games[client.gameID]) == 0 {
			delete(h.games, client.gameID)
		}
	}
}

// BroadcastToGame sends a message to all clients watching a game
func (h *Hub) BroadcastToGame(gameID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.games[gameID] {
		select {
		case client.send <- data:
		default:
			// Slow client, drop the message; the next update carries full state
		}
	}
}

// Watchers returns the number of clients connected to a game
func (h *Hub) Watchers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.games[gameID])
}

// Notify pushes a half-turn to the game's watchers
func (h *Hub) Notify(e session.Event) {
	msgType := "playerTurn"
	if e.Turn.Asker == game.ComputerName {
		msgType = "computerTurn"
	}

	h.BroadcastToGame(e.GameID, Message{
		Type:   msgType,
		GameID: e.GameID,
		Data:   e.Turn,
	})
	h.BroadcastToGame(e.GameID, Message{
		Type:   "gameUpdate",
		GameID: e.GameID,
		Data:   e.State,
	})
}

// WebSocketHandler handles WebSocket connections
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		errorResponse(w, http.StatusBadRequest, "gameId is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
		hub:    h,
	}

	// Queue the welcome message before registering so it is sent first
	welcomeMsg := Message{
		Type:   "welcome",
		GameID: gameID,
		Data: map[string]string{
			"message": "Connected to Go Fish game server",
		},
	}
	welcomeData, _ := json.Marshal(welcomeMsg)
	client.send <- welcomeData

	select {
	case h.register <- client:
	case <-h.quit:
		conn.Close()
		return
	}

	// Start goroutines for reading and writing
	go client.readPump()
	go client.writePump()
}

// readPump drains the connection so pongs and close frames are processed.
// Game actions go through the REST routes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
