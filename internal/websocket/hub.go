package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MatchEvent is the payload pushed to connected clients when the matching
// engine records a new lost/found pair.
type MatchEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"matchId"`
	LostID    uuid.UUID `json:"lostId"`
	FoundID   uuid.UUID `json:"foundId"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Hub maintains the set of active clients and broadcasts match events.
type Hub struct {
	// Registered clients. Maps user ID to a set of active client connections.
	Clients map[uuid.UUID]map[*Client]bool

	// Outbound messages fanned out to every connected client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[uuid.UUID]map[*Client]bool),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.Clients[client.UserID]; !ok {
				h.Clients[client.UserID] = make(map[*Client]bool)
			}
			h.Clients[client.UserID][client] = true
			log.Printf("WebSocket Client registered for User %s. Total connections for user: %d", client.UserID, len(h.Clients[client.UserID]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if userClients, ok := h.Clients[client.UserID]; ok {
				if _, clientOk := userClients[client]; clientOk {
					delete(userClients, client)
					if len(userClients) == 0 {
						delete(h.Clients, client.UserID)
						log.Printf("WebSocket Client unregistered. User %s has no more connections.", client.UserID)
					} else {
						log.Printf("WebSocket Client unregistered for User %s. Remaining connections: %d", client.UserID, len(userClients))
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.RLock()
			for _, userClients := range h.Clients {
				for client := range userClients {
					select {
					case client.Send <- message:
					default:
						log.Printf("Broadcast send buffer full for client of User %s", client.UserID)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastMatchEvent pushes a new-match notification to every connected
// client. Drops the event if the hub is busy rather than blocking the
// matching run.
func (h *Hub) BroadcastMatchEvent(event *MatchEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal match event %s: %v", event.MatchID, err)
		return
	}
	select {
	case h.Broadcast <- payload:
	case <-time.After(1 * time.Second):
		log.Printf("Timeout queuing match event %s in hub's Broadcast channel.", event.MatchID)
	}
}
