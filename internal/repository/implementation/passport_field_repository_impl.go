package implementation

import (
	"context"
	"errors"

	"idea-passport-be/internal/mapper"
	"idea-passport-be/internal/model"
	"idea-passport-be/internal/repository/contract"
	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/pkg/passport/state"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PassportFieldRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PassportFieldMapper
}

func NewPassportFieldRepository(db *gorm.DB) contract.PassportFieldRepository {
	return &PassportFieldRepositoryImpl{
		db:     db,
		mapper: mapper.NewPassportFieldMapper(),
	}
}

func (r *PassportFieldRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PassportFieldRepositoryImpl) Create(ctx context.Context, field *state.Field) error {
	m := r.mapper.ToModel(field)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*field = *r.mapper.ToEntity(m)
	return nil
}

func (r *PassportFieldRepositoryImpl) Update(ctx context.Context, field *state.Field) error {
	m := r.mapper.ToModel(field)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*field = *r.mapper.ToEntity(m)
	return nil
}

func (r *PassportFieldRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PassportField{}, id).Error
}

func (r *PassportFieldRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*state.Field, error) {
	var m model.PassportField
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PassportFieldRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]state.Field, error) {
	var models []*model.PassportField
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PassportFieldRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PassportField{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
