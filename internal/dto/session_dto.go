package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	IdeaText   string         `json:"idea_text"`
	Experience *ExperienceDTO `json:"experience,omitempty"`
}

type CreateSessionResponse struct {
	Id       uuid.UUID `json:"id"`
	Greeting string    `json:"greeting"`
}

type ExperienceDTO struct {
	Role               string `json:"role" validate:"required"`
	BusinessExperience string `json:"business_experience" validate:"required,oneof=none some experienced"`
	StartupKnowledge   string `json:"startup_knowledge" validate:"required,oneof=beginner intermediate expert"`
	IdeaStage          string `json:"idea_stage" validate:"required,oneof=idea prototype launched"`
}

type UpdateExperienceRequest struct {
	SessionId  uuid.UUID     `json:"-"`
	Experience ExperienceDTO `json:"experience" validate:"required"`
}

type UpdateIdeaRequest struct {
	SessionId uuid.UUID `json:"-"`
	IdeaText  string    `json:"idea_text" validate:"required,min=10"`
}

type ShowSessionResponse struct {
	Id              uuid.UUID               `json:"id"`
	Status          string                  `json:"status"`
	IdeaText        string                  `json:"idea_text"`
	Experience      *ExperienceDTO          `json:"experience,omitempty"`
	Score           *float64                `json:"score,omitempty"`
	Assessment      string                  `json:"assessment,omitempty"`
	Fields          []PassportFieldResponse `json:"fields"`
	CompletedFields int                     `json:"completed_fields"`
	TotalFields     int                     `json:"total_fields"`
	ProgressPercent int                     `json:"progress_percent"`
	CreatedAt       time.Time               `json:"created_at"`
	CompletedAt     *time.Time              `json:"completed_at,omitempty"`
}
