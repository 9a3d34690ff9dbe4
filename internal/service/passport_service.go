package service

import (
	"context"

	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/pkg/serverutils"
	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/internal/repository/unitofwork"
	"idea-passport-be/pkg/passport/state"

	"github.com/google/uuid"
)

type IPassportService interface {
	Fields(ctx context.Context, sessionId uuid.UUID) (*dto.PassportResponse, error)
}

type passportService struct {
	uowFactory         unitofwork.RepositoryFactory
	minCompletedFields int
}

func NewPassportService(uowFactory unitofwork.RepositoryFactory, minCompletedFields int) IPassportService {
	return &passportService{
		uowFactory:         uowFactory,
		minCompletedFields: minCompletedFields,
	}
}

func (s *passportService) Fields(ctx context.Context, sessionId uuid.UUID) (*dto.PassportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound
	}

	fields, err := uow.PassportFieldRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "order_index"},
	)
	if err != nil {
		return nil, err
	}

	completed := 0
	out := make([]dto.PassportFieldResponse, len(fields))
	for i, f := range fields {
		if f.Status == state.FieldStatusComplete {
			completed++
		}
		out[i] = passportFieldToDTO(f)
	}

	return &dto.PassportResponse{
		SessionId:       sessionId,
		Fields:          out,
		CompletedFields: completed,
		ProgressPercent: progressPercent(completed, len(fields), s.minCompletedFields),
	}, nil
}

func passportFieldToDTO(f state.Field) dto.PassportFieldResponse {
	questions := f.Questions
	if questions == nil {
		questions = []string{}
	}
	answers := f.Answers
	if answers == nil {
		answers = []string{}
	}
	return dto.PassportFieldResponse{
		Id:            f.Id,
		FieldKey:      f.Key,
		Name:          f.Name,
		Icon:          f.Icon,
		Status:        string(f.Status),
		Content:       f.Content,
		Questions:     questions,
		Answers:       answers,
		OrderIndex:    f.OrderIndex,
		QuestionCount: f.QuestionCount,
		DepthReason:   f.DepthReason,
	}
}
