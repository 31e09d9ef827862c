package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	EventApplicationSubmitted = "application_submitted"
	EventApplicationApproved  = "application_approved"
	EventApplicationRejected  = "application_rejected"
	EventQuestionEscalated    = "question_escalated"
	EventQuestionAnswered     = "question_answered"
	EventUserRegistered       = "user_registered"
)

// ApplicationEventPayload is the application snapshot sent to subscribers.
type ApplicationEventPayload struct {
	ApplicationID int64     `json:"application_id"`
	UserID        int64     `json:"user_id"`
	Status        string    `json:"status"`
	DecidedBy     int64     `json:"decided_by,omitempty"`
	At            time.Time `json:"at"`
}

// QuestionEventPayload describes an operator handoff.
type QuestionEventPayload struct {
	UserID     int64     `json:"user_id"`
	Question   string    `json:"question"`
	OperatorID int64     `json:"operator_id,omitempty"`
	At         time.Time `json:"at"`
}

// UserEventPayload is emitted on lifecycle milestones.
type UserEventPayload struct {
	UserID     int64     `json:"user_id"`
	PlatformID string    `json:"platform_id,omitempty"`
	At         time.Time `json:"at"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode unmarshals the payload into dst.
func (e *Event) Decode(dst interface{}) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for the given event types.
func (b *EventBus) Subscribe(handler EventHandler, eventTypes ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], handler)
	}
}

// Publish runs every subscriber synchronously; one failing handler does not stop the others.
func (b *EventBus) Publish(event *Event) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
}
