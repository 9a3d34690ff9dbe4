package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PassportField struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_session_field_key"`
	FieldKey      string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_session_field_key"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Icon          string         `gorm:"type:varchar(16)"`
	Status        string         `gorm:"type:varchar(16);not null;default:'pending'"`
	Content       string         `gorm:"type:text"`
	Questions     datatypes.JSON `gorm:"type:jsonb"`
	Answers       datatypes.JSON `gorm:"type:jsonb"`
	OrderIndex    int            `gorm:"not null;default:0"`
	QuestionCount int            `gorm:"not null;default:0"`
	DepthReason   string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (PassportField) TableName() string {
	return "passport_fields"
}
