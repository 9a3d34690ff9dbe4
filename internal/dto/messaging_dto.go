package dto

import "github.com/google/uuid"

// FieldCompletedMessage is the payload published when a passport field is
// completed. The consumer folds the content into the session memory.
type FieldCompletedMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	FieldKey  string    `json:"field_key"`
	Content   string    `json:"content"`
}
