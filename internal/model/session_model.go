package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Status      string         `gorm:"type:varchar(16);not null;default:'intro';index"`
	IdeaText    string         `gorm:"type:text"`
	Experience  datatypes.JSON `gorm:"type:jsonb"`
	Score       *float64       `gorm:"type:numeric(3,1)"`
	Assessment  string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	CompletedAt *time.Time
}

func (Session) TableName() string {
	return "sessions"
}
