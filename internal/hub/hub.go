// Package hub fans thread activity out to server-sent event subscribers.
package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// clientBuffer is how many events a subscriber may fall behind before new ones are dropped.
const clientBuffer = 16

// Event is a real-time update sent to thread subscribers.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client receives the encoded events of one thread. The hub closes it on Unsubscribe.
type Client chan []byte

// Hub tracks the subscribers of every thread.
type Hub struct {
	threads map[int]map[Client]bool
	mu      sync.RWMutex
}

func New() *Hub {
	return &Hub{
		threads: make(map[int]map[Client]bool),
	}
}

// Subscribe registers a new client for threadID.
func (h *Hub) Subscribe(threadID int) Client {
	client := make(Client, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.threads[threadID]; !ok {
		h.threads[threadID] = make(map[Client]bool)
	}
	h.threads[threadID][client] = true
	return client
}

// Unsubscribe removes client from threadID and closes it.
func (h *Hub) Unsubscribe(threadID int, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.threads[threadID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client)
	if len(clients) == 0 {
		delete(h.threads, threadID)
	}
}

// Subscribers returns the number of clients following threadID.
func (h *Hub) Subscribers(threadID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.threads[threadID])
}

// Publish sends an event to every client of threadID without blocking. Clients
// whose buffer is full miss the event.
func (h *Hub) Publish(threadID int, eventType string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.threads[threadID]
	if !ok {
		return
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("hub: encode %s event for thread %d: %v", eventType, threadID, err)
		return
	}
	for client := range clients {
		select {
		case client <- data:
		default:
		}
	}
}
