package mapper

import (
	"encoding/json"
	"time"

	"idea-passport-be/internal/entity"
	"idea-passport-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var experience *entity.Experience
	if len(s.Experience) > 0 {
		var exp entity.Experience
		if err := json.Unmarshal(s.Experience, &exp); err == nil {
			experience = &exp
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:          s.Id,
		Status:      s.Status,
		IdeaText:    s.IdeaText,
		Experience:  experience,
		Score:       s.Score,
		Assessment:  s.Assessment,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		CompletedAt: s.CompletedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var experience datatypes.JSON
	if s.Experience != nil {
		if raw, err := json.Marshal(s.Experience); err == nil {
			experience = raw
		}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:          s.Id,
		Status:      s.Status,
		IdeaText:    s.IdeaText,
		Experience:  experience,
		Score:       s.Score,
		Assessment:  s.Assessment,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		CompletedAt: s.CompletedAt,
	}
}
