package websocket

import (
	"encoding/json"

	"github.com/isdelr/movie-catalog-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEventMessage wraps a domain event.
func NewEventMessage(event models.Event) []byte {
	return encode(Message{Action: "event", Payload: event})
}

// NewErrorMessage builds an error reply for a single client.
func NewErrorMessage(text string) []byte {
	return encode(Message{Action: "error", Payload: map[string]string{"message": text}})
}

// NewPongMessage answers a client ping.
func NewPongMessage() []byte {
	return encode(Message{Action: "pong"})
}

func encode(msg Message) []byte {
	b, _ := json.Marshal(msg)
	return b
}
