package mapper

import (
	"encoding/json"
	"time"

	"idea-passport-be/internal/model"
	"idea-passport-be/pkg/passport/memorytrack"

	"gorm.io/datatypes"
)

type SessionMemoryMapper struct{}

func NewSessionMemoryMapper() *SessionMemoryMapper {
	return &SessionMemoryMapper{}
}

func (m *SessionMemoryMapper) ToEntity(sm *model.SessionMemory) *memorytrack.Memory {
	if sm == nil {
		return nil
	}

	memory := memorytrack.NewMemory(sm.SessionId)
	memory.UpdatedAt = sm.UpdatedAt

	if len(sm.Entities) > 0 {
		_ = json.Unmarshal(sm.Entities, &memory.Entities)
	}
	if len(sm.FieldSummaries) > 0 {
		_ = json.Unmarshal(sm.FieldSummaries, &memory.FieldSummaries)
	}
	if len(sm.Contradictions) > 0 {
		_ = json.Unmarshal(sm.Contradictions, &memory.Contradictions)
	}

	return &memory
}

func (m *SessionMemoryMapper) ToModel(memory *memorytrack.Memory) *model.SessionMemory {
	if memory == nil {
		return nil
	}

	updatedAt := memory.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return &model.SessionMemory{
		SessionId:      memory.SessionId,
		Entities:       encodeJSON(memory.Entities),
		FieldSummaries: encodeJSON(memory.FieldSummaries),
		Contradictions: encodeJSON(memory.Contradictions),
		UpdatedAt:      updatedAt,
	}
}

func encodeJSON(value interface{}) datatypes.JSON {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return raw
}
