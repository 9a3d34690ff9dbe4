package unitofwork

import (
	"context"

	"idea-passport-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	PassportFieldRepository() contract.PassportFieldRepository
	SessionMemoryRepository() contract.SessionMemoryRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
