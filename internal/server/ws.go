package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsSocket pushes live gesture events to WebSocket clients. It holds
// one subscription on the engine bus for all connected clients.
type EventsSocket struct {
	engine  *engine.Engine
	token   string
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewEventsSocket creates the handler and subscribes it to the engine.
func NewEventsSocket(e *engine.Engine) *EventsSocket {
	h := &EventsSocket{
		engine:  e,
		clients: make(map[*websocket.Conn]bool),
	}
	h.token = e.Subscribe(h.publish)
	return h
}

// ServeHTTP handles WebSocket upgrade requests. On connect the client
// receives the engine's recent event backlog, then live events as they are
// recognized.
func (h *EventsSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	for _, ev := range h.engine.Recent() {
		if msg, err := json.Marshal(ev); err == nil {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
	}
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

// publish fans one gesture event out to every connected client.
func (h *EventsSocket) publish(ev engine.GestureEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *EventsSocket) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close unsubscribes from the engine and drops all clients.
func (h *EventsSocket) Close() {
	h.engine.Unsubscribe(h.token)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
}
