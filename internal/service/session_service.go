package service

import (
	"context"
	"time"

	"idea-passport-be/internal/constant"
	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/entity"
	"idea-passport-be/internal/pkg/logger"
	"idea-passport-be/internal/pkg/serverutils"
	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/internal/repository/unitofwork"
	"idea-passport-be/pkg/events"
	pktNats "idea-passport-be/pkg/nats"
	"idea-passport-be/pkg/passport/state"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error)
	UpdateExperience(ctx context.Context, req *dto.UpdateExperienceRequest) error
	UpdateIdea(ctx context.Context, req *dto.UpdateIdeaRequest) error
}

type sessionService struct {
	uowFactory         unitofwork.RepositoryFactory
	eventPublisher     *pktNats.Publisher
	log                logger.ILogger
	minCompletedFields int
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	minCompletedFields int,
) ISessionService {
	return &sessionService{
		uowFactory:         uowFactory,
		eventPublisher:     eventPublisher,
		log:                log,
		minCompletedFields: minCompletedFields,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.Session{
		Id:         uuid.New(),
		Status:     entity.SessionStatusIntro,
		IdeaText:   req.IdeaText,
		Experience: experienceFromDTO(req.Experience),
		CreatedAt:  time.Now(),
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(ctx, events.NewSessionCreated(session.Id)); err != nil {
		s.log.Warn("SESSION", "Failed to publish session created event", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	return &dto.CreateSessionResponse{
		Id:       session.Id,
		Greeting: constant.MentorInitialGreeting,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound
	}

	fields, err := uow.PassportFieldRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "order_index"},
	)
	if err != nil {
		return nil, err
	}

	completed := 0
	fieldDTOs := make([]dto.PassportFieldResponse, len(fields))
	for i, f := range fields {
		if f.Status == state.FieldStatusComplete {
			completed++
		}
		fieldDTOs[i] = passportFieldToDTO(f)
	}

	return &dto.ShowSessionResponse{
		Id:              session.Id,
		Status:          session.Status,
		IdeaText:        session.IdeaText,
		Experience:      experienceToDTO(session.Experience),
		Score:           session.Score,
		Assessment:      session.Assessment,
		Fields:          fieldDTOs,
		CompletedFields: completed,
		TotalFields:     len(fields),
		ProgressPercent: progressPercent(completed, len(fields), s.minCompletedFields),
		CreatedAt:       session.CreatedAt,
		CompletedAt:     session.CompletedAt,
	}, nil
}

func (s *sessionService) UpdateExperience(ctx context.Context, req *dto.UpdateExperienceRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.ErrNotFound
	}

	session.Experience = experienceFromDTO(&req.Experience)
	if session.Status == entity.SessionStatusIntro {
		session.Status = entity.SessionStatusInProgress
	}
	return uow.SessionRepository().Update(ctx, session)
}

func (s *sessionService) UpdateIdea(ctx context.Context, req *dto.UpdateIdeaRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.ErrNotFound
	}

	session.IdeaText = req.IdeaText
	return uow.SessionRepository().Update(ctx, session)
}

// progressPercent measures against the larger of the fields opened so far
// and the required minimum, so starting a session never shows 100%.
func progressPercent(completed, total, minimum int) int {
	denominator := total
	if denominator < minimum {
		denominator = minimum
	}
	if denominator == 0 {
		return 0
	}
	percent := completed * 100 / denominator
	if percent > 100 {
		percent = 100
	}
	return percent
}

func experienceFromDTO(e *dto.ExperienceDTO) *entity.Experience {
	if e == nil {
		return nil
	}
	return &entity.Experience{
		Role:               e.Role,
		BusinessExperience: e.BusinessExperience,
		StartupKnowledge:   e.StartupKnowledge,
		IdeaStage:          e.IdeaStage,
	}
}

func experienceToDTO(e *entity.Experience) *dto.ExperienceDTO {
	if e == nil {
		return nil
	}
	return &dto.ExperienceDTO{
		Role:               e.Role,
		BusinessExperience: e.BusinessExperience,
		StartupKnowledge:   e.StartupKnowledge,
		IdeaStage:          e.IdeaStage,
	}
}
