package contract

import (
	"context"

	"idea-passport-be/pkg/passport/memorytrack"

	"github.com/google/uuid"
)

type SessionMemoryRepository interface {
	// Upsert writes the full memory blob, replacing any existing row.
	Upsert(ctx context.Context, memory *memorytrack.Memory) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*memorytrack.Memory, error)
	Delete(ctx context.Context, sessionId uuid.UUID) error
}
