package contract

import (
	"context"

	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/pkg/passport/state"

	"github.com/google/uuid"
)

type PassportFieldRepository interface {
	Create(ctx context.Context, field *state.Field) error
	Update(ctx context.Context, field *state.Field) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*state.Field, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]state.Field, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
