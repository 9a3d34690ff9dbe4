package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type FieldEventDTO struct {
	Id               uuid.UUID `json:"id"`
	FieldKey         string    `json:"field_key"`
	Name             string    `json:"name"`
	Icon             string    `json:"icon,omitempty"`
	Question         string    `json:"question,omitempty"`
	PlannedQuestions int       `json:"planned_questions,omitempty"`
	DepthReason      string    `json:"depth_reason,omitempty"`
}

type CompletedFieldDTO struct {
	FieldKey string `json:"field_key"`
	Content  string `json:"content"`
}

type SessionEndDTO struct {
	Message         string   `json:"message"`
	Score           float64  `json:"score"`
	Assessment      string   `json:"assessment"`
	FieldsCompleted []string `json:"fields_completed"`
}

type SendMessageResponse struct {
	SessionId      uuid.UUID          `json:"session_id"`
	Reply          string             `json:"reply"`
	NewField       *FieldEventDTO     `json:"new_field,omitempty"`
	CompletedField *CompletedFieldDTO `json:"completed_field,omitempty"`
	SessionEnd     *SessionEndDTO     `json:"session_end,omitempty"`
	Clarification  string             `json:"clarification,omitempty"`
	PolicyNotice   string             `json:"policy_notice,omitempty"`
}

type ChatHistoryItemResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
