package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation for session lifecycle events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeSessionCreated   = "SESSION_CREATED"
	TypeSessionCompleted = "SESSION_COMPLETED"
)

// NewSessionCreated builds the lifecycle event emitted when a session starts.
func NewSessionCreated(sessionId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionCompleted builds the lifecycle event emitted when the model ends
// a session, carrying the readiness score and completed field keys.
func NewSessionCompleted(sessionId uuid.UUID, score float64, completedFields []string) Event {
	return BaseEvent{
		Type: TypeSessionCompleted,
		Data: map[string]interface{}{
			"session_id":       sessionId.String(),
			"score":            score,
			"completed_fields": completedFields,
		},
		OccurredAt: time.Now(),
	}
}
