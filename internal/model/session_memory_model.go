package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionMemory struct {
	SessionId      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Entities       datatypes.JSON `gorm:"type:jsonb"`
	FieldSummaries datatypes.JSON `gorm:"type:jsonb"`
	Contradictions datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (SessionMemory) TableName() string {
	return "session_memories"
}
