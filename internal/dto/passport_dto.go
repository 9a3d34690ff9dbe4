package dto

import (
	"time"

	"github.com/google/uuid"
)

type PassportFieldResponse struct {
	Id            uuid.UUID `json:"id"`
	FieldKey      string    `json:"field_key"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon,omitempty"`
	Status        string    `json:"status"`
	Content       string    `json:"content,omitempty"`
	Questions     []string  `json:"questions"`
	Answers       []string  `json:"answers"`
	OrderIndex    int       `json:"order_index"`
	QuestionCount int       `json:"question_count"`
	DepthReason   string    `json:"depth_reason,omitempty"`
}

type PassportResponse struct {
	SessionId       uuid.UUID               `json:"session_id"`
	Fields          []PassportFieldResponse `json:"fields"`
	CompletedFields int                     `json:"completed_fields"`
	ProgressPercent int                     `json:"progress_percent"`
}

type MemoryEntitiesDTO struct {
	Audiences   []string `json:"mentioned_entities"`
	Competitors []string `json:"competitors"`
	Features    []string `json:"features"`
	Numbers     []string `json:"numbers"`
	Locations   []string `json:"locations"`
}

type ContradictionDTO struct {
	Id          string    `json:"id"`
	Field1      string    `json:"field1"`
	Field2      string    `json:"field2"`
	Statement1  string    `json:"statement1"`
	Statement2  string    `json:"statement2"`
	Explanation string    `json:"explanation"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionMemoryResponse struct {
	SessionId      uuid.UUID          `json:"session_id"`
	Entities       MemoryEntitiesDTO  `json:"entities"`
	FieldSummaries map[string]string  `json:"field_summaries"`
	Contradictions []ContradictionDTO `json:"contradictions"`
	Summary        string             `json:"summary"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type ResolveContradictionRequest struct {
	SessionId       uuid.UUID `json:"-"`
	ContradictionId string    `json:"contradiction_id" validate:"required"`
}
