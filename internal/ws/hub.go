// Package ws pushes live dashboard events (video published, video viewed)
// to connected channel owners.
package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type      string      `json:"type"`
	ChannelID uuid.UUID   `json:"channelId"`
	Payload   interface{} `json:"payload,omitempty"`
	At        time.Time   `json:"at"`
}

type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool // keyed by channel (owner) ID
	register   chan *Client
	unregister chan *Client
	events     chan Event
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, clients := range h.clients {
				for client := range clients {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			if h.clients[client.channelID] == nil {
				h.clients[client.channelID] = make(map[*Client]bool)
			}
			h.clients[client.channelID][client] = true

		case client := <-h.unregister:
			if clients, ok := h.clients[client.channelID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					client.Close()
					if len(clients) == 0 {
						delete(h.clients, client.channelID)
					}
				}
			}

		case event := <-h.events:
			for client := range h.clients[event.ChannelID] {
				client.Send(event)
			}
		}
	}
}

// Stop shuts down the hub and closes every client connection. It blocks
// until Run has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// Broadcast queues an event for every client watching the channel. It never
// blocks the caller: when the hub is saturated or stopped the event is
// dropped — the dashboard feed is advisory, the database holds the truth.
func (h *Hub) Broadcast(channelID uuid.UUID, eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		ChannelID: channelID,
		Payload:   payload,
		At:        time.Now(),
	}
	select {
	case h.events <- event:
	default:
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
