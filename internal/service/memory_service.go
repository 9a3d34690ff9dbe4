package service

import (
	"context"

	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/pkg/serverutils"
	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/internal/repository/unitofwork"
	"idea-passport-be/pkg/passport/memorytrack"

	"github.com/google/uuid"
)

type IMemoryService interface {
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionMemoryResponse, error)
	ResolveContradiction(ctx context.Context, req *dto.ResolveContradictionRequest) (*dto.SessionMemoryResponse, error)
	ApplyFieldSummary(ctx context.Context, sessionId uuid.UUID, fieldKey, content string) error
}

type memoryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMemoryService(uowFactory unitofwork.RepositoryFactory) IMemoryService {
	return &memoryService{
		uowFactory: uowFactory,
	}
}

func (s *memoryService) load(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*memorytrack.Memory, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound
	}

	memory, err := uow.SessionMemoryRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if memory == nil {
		m := memorytrack.NewMemory(sessionId)
		memory = &m
	}
	return memory, nil
}

func (s *memoryService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionMemoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memory, err := s.load(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	return memoryToDTO(memory), nil
}

func (s *memoryService) ResolveContradiction(ctx context.Context, req *dto.ResolveContradictionRequest) (*dto.SessionMemoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memory, err := s.load(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	found := false
	for _, c := range memory.Contradictions {
		if c.Id == req.ContradictionId {
			found = true
			break
		}
	}
	if !found {
		return nil, serverutils.ErrNotFound
	}

	resolved := memorytrack.ResolveContradiction(*memory, req.ContradictionId)
	if err := uow.SessionMemoryRepository().Upsert(ctx, &resolved); err != nil {
		return nil, err
	}
	return memoryToDTO(&resolved), nil
}

func (s *memoryService) ApplyFieldSummary(ctx context.Context, sessionId uuid.UUID, fieldKey, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	memory, err := s.load(ctx, uow, sessionId)
	if err != nil {
		return err
	}

	updated := memorytrack.SetFieldSummary(*memory, fieldKey, content)
	return uow.SessionMemoryRepository().Upsert(ctx, &updated)
}

func memoryToDTO(m *memorytrack.Memory) *dto.SessionMemoryResponse {
	contradictions := make([]dto.ContradictionDTO, len(m.Contradictions))
	for i, c := range m.Contradictions {
		contradictions[i] = dto.ContradictionDTO{
			Id:          c.Id,
			Field1:      c.Field1,
			Field2:      c.Field2,
			Statement1:  c.Statement1,
			Statement2:  c.Statement2,
			Explanation: c.Explanation,
			Resolved:    c.Resolved,
			CreatedAt:   c.CreatedAt,
		}
	}

	summaries := m.FieldSummaries
	if summaries == nil {
		summaries = map[string]string{}
	}

	return &dto.SessionMemoryResponse{
		SessionId: m.SessionId,
		Entities: dto.MemoryEntitiesDTO{
			Audiences:   m.Entities.Audiences,
			Competitors: m.Entities.Competitors,
			Features:    m.Entities.Features,
			Numbers:     m.Entities.Numbers,
			Locations:   m.Entities.Locations,
		},
		FieldSummaries: summaries,
		Contradictions: contradictions,
		Summary:        memorytrack.Summary(*m),
		UpdatedAt:      m.UpdatedAt,
	}
}
