package implementation

import (
	"context"
	"errors"

	"idea-passport-be/internal/mapper"
	"idea-passport-be/internal/model"
	"idea-passport-be/internal/repository/contract"
	"idea-passport-be/pkg/passport/memorytrack"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionMemoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMemoryMapper
}

func NewSessionMemoryRepository(db *gorm.DB) contract.SessionMemoryRepository {
	return &SessionMemoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMemoryMapper(),
	}
}

func (r *SessionMemoryRepositoryImpl) Upsert(ctx context.Context, memory *memorytrack.Memory) error {
	m := r.mapper.ToModel(memory)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *SessionMemoryRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*memorytrack.Memory, error) {
	var m model.SessionMemory
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionMemoryRepositoryImpl) Delete(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.SessionMemory{}).Error
}
