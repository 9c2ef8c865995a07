// Package server provides the HTTP server for the GestureKit engine.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/astralplayer/gesturekit/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler broadcasts the live gesture state via WebSocket.
type StateHandler struct {
	engine  *engine.Engine
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStateHandler creates a new StateHandler for the given engine.
func NewStateHandler(e *engine.Engine) *StateHandler {
	h := &StateHandler{
		engine:  e,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends state snapshots to all connected clients.
func (h *StateHandler) broadcast() {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		msg, _ := json.Marshal(map[string]any{
			"state":     h.engine.State(),
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
