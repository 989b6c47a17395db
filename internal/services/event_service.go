package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/movie-catalog-be/internal/models"
)

// EventPublisher receives every recorded event, e.g. for websocket fan-out.
type EventPublisher interface {
	Publish(event models.Event)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, username *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService keeps a bounded history of recent events in memory.
type EventService struct {
	mu        sync.Mutex
	events    []models.Event // ring buffer
	next      int
	full      bool
	publisher EventPublisher
	now       func() time.Time
}

// NewEventService creates an EventService retaining up to capacity events.
// publisher may be nil.
func NewEventService(capacity int, publisher EventPublisher) *EventService {
	if capacity <= 0 {
		capacity = 1
	}
	return &EventService{
		events:    make([]models.Event, capacity),
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateEvent records a new event and forwards it to the publisher.
func (s *EventService) CreateEvent(eventType, level, message string, username *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Username:  username,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.events[s.next] = event
	s.next = (s.next + 1) % len(s.events)
	if s.next == 0 {
		s.full = true
	}
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.Publish(event)
	}
	return nil
}

// GetRecentEvents returns up to limit events, newest first.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.next
	if s.full {
		size = len(s.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	events := make([]models.Event, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.next - 1 - i + len(s.events)) % len(s.events)
		events = append(events, s.events[idx])
	}
	return events, nil
}
