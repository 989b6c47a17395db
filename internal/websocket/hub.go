package websocket

import (
	"strings"

	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/rs/zerolog/log"
)

type broadcast struct {
	topic string
	data  []byte
}

type reply struct {
	client *Client
	data   []byte
}

// Hub maintains the set of active clients and broadcasts events to them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	broadcast  chan broadcast
	direct     chan reply
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan broadcast, 256),
		direct:     make(chan reply, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Str("topic", client.Topic).Msg("Client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case r := <-h.direct:
			if _, ok := h.clients[r.client]; ok {
				select {
				case r.client.Send <- r.data:
				default:
				}
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.Topic != "" && client.Topic != msg.topic {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Stop terminates Run and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Register adds a client. It is a no-op once the hub has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Reply queues data for a single client. Clients that already left are skipped.
func (h *Hub) Reply(client *Client, data []byte) {
	select {
	case h.direct <- reply{client: client, data: data}:
	case <-h.done:
	}
}

// Publish broadcasts event to every client subscribed to its topic.
// The topic is the event type up to the first dot ("user", "movie", "catalog").
// Events are dropped rather than blocking the caller when the hub is saturated.
func (h *Hub) Publish(event models.Event) {
	topic, _, _ := strings.Cut(event.Type, ".")
	select {
	case h.broadcast <- broadcast{topic: topic, data: NewEventMessage(event)}:
	case <-h.done:
	default:
		log.Warn().Str("type", event.Type).Msg("Websocket hub saturated, dropping event")
	}
}
