package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"idea-passport-be/internal/constant"
	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/entity"
	"idea-passport-be/internal/pkg/logger"
	"idea-passport-be/internal/pkg/serverutils"
	"idea-passport-be/internal/repository/memory"
	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/internal/repository/unitofwork"
	"idea-passport-be/pkg/events"
	"idea-passport-be/pkg/llm"
	pktNats "idea-passport-be/pkg/nats"
	"idea-passport-be/pkg/passport/depth"
	"idea-passport-be/pkg/passport/executor"
	"idea-passport-be/pkg/passport/memorytrack"
	"idea-passport-be/pkg/passport/state"
	"idea-passport-be/pkg/passport/tools"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// historyWindow bounds how many stored messages are replayed to the model.
const historyWindow = 20

type IChatService interface {
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryItemResponse, error)
}

type chatService struct {
	uowFactory         unitofwork.RepositoryFactory
	stateRepo          *memory.StateRepository
	provider           llm.LLMProvider
	executor           *executor.Executor
	tracker            *memorytrack.Tracker
	publisherService   IPublisherService
	eventPublisher     *pktNats.Publisher
	log                logger.ILogger
	minCompletedFields int
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	stateRepo *memory.StateRepository,
	provider llm.LLMProvider,
	exec *executor.Executor,
	tracker *memorytrack.Tracker,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	minCompletedFields int,
) IChatService {
	return &chatService{
		uowFactory:         uowFactory,
		stateRepo:          stateRepo,
		provider:           provider,
		executor:           exec,
		tracker:            tracker,
		publisherService:   publisherService,
		eventPublisher:     eventPublisher,
		log:                log,
		minCompletedFields: minCompletedFields,
	}
}

func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound
	}
	if session.Status == entity.SessionStatusCompleted {
		return nil, fiber.NewError(fiber.StatusBadRequest, "session already completed")
	}

	convState, err := s.loadState(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	sessionMemory, err := s.loadMemory(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	// Memory enrichment runs before the model turn so contradictions can
	// interrupt the flow with a clarification instead of a new question.
	// The answer is recorded only after the check passes, so an interrupted
	// turn leaves the field transcript untouched.
	currentKey := convState.CurrentFieldKey
	if currentKey != "" {
		sessionMemory = s.tracker.UpdateWithAnswer(ctx, sessionMemory, req.Message, currentKey, session.IdeaText)

		check, checked := s.tracker.CheckContradiction(ctx, sessionMemory, req.Message, currentKey)
		sessionMemory = checked
		if check.HasContradiction {
			return s.interruptWithClarification(ctx, uow, session, convState, sessionMemory, req.Message, check.ClarificationQuestion)
		}
	}

	// Record the user's answer against the active topic. The very first
	// message (the idea itself) has no topic yet.
	if recorded, err := state.RecordAnswer(convState, req.Message); err == nil {
		convState = recorded
	}

	result, reply, err := s.modelTurn(ctx, uow, session, convState, sessionMemory, req.Message)
	if err != nil {
		return nil, err
	}
	convState = result.NewState

	if err := s.persistTurn(ctx, uow, session, convState, sessionMemory, req.Message, reply, result); err != nil {
		return nil, err
	}

	s.stateRepo.Save(convState)
	s.publishEffects(ctx, session, result)

	return s.buildSendMessageResponse(session, convState, reply, result), nil
}

// modelTurn runs the tool-calling conversation once, retrying a single time
// when the model violates the minimum-fields rule or reopens a completed
// field.
func (s *chatService) modelTurn(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.Session,
	convState state.State,
	sessionMemory memorytrack.Memory,
	userMessage string,
) (executor.Result, string, error) {
	history, err := s.recentHistory(ctx, uow, session.Id)
	if err != nil {
		return executor.Result{NewState: convState}, "", err
	}

	messages := s.buildMessages(session, convState, sessionMemory, history, userMessage, "")

	resp, err := s.provider.ChatWithTools(ctx, messages, tools.Definitions)
	if err != nil {
		return executor.Result{NewState: convState}, "", err
	}

	result, execErr := s.executor.ExecuteAll(resp.Calls, convState)

	// Early end: steer the model back to the remaining topics and retry once.
	if execErr == nil && result.SessionEnd != nil && len(convState.CompletedKeys) < s.minCompletedFields {
		steering := fmt.Sprintf(constant.MinFieldsSteeringPromptV1, len(convState.CompletedKeys), s.minCompletedFields)
		retry := s.buildMessages(session, convState, sessionMemory, history, userMessage, steering)
		if retryResp, retryErr := s.provider.ChatWithTools(ctx, retry, tools.Definitions); retryErr == nil {
			if retryResult, retryExecErr := s.executor.ExecuteAll(retryResp.Calls, convState); retryExecErr == nil && retryResult.SessionEnd == nil {
				resp = retryResp
				result = retryResult
			} else {
				s.log.Warn("CHAT", "Model insists on ending early, accepting", map[string]interface{}{
					"session_id": session.Id,
					"completed":  len(convState.CompletedKeys),
				})
			}
		}
	}

	if execErr != nil {
		if errors.Is(execErr, executor.ErrFieldCompleted) {
			result, execErr = s.recoverCompletedField(result, convState)
		}
		if execErr != nil {
			s.log.Error("CHAT", "Tool execution failed", map[string]interface{}{
				"session_id": session.Id,
				"error":      execErr.Error(),
			})
			return executor.Result{NewState: convState}, "", fiber.NewError(fiber.StatusBadGateway, "mentor could not process the reply")
		}
	}

	reply := modelReply(resp, result)
	return result, reply, nil
}

// recoverCompletedField substitutes the first untouched enumerated field when
// the model tries to reopen one it already finished. Effects applied before
// the violation, a completion in particular, are kept in the result.
func (s *chatService) recoverCompletedField(partial executor.Result, convState state.State) (executor.Result, error) {
	// Progress made before the violation is kept.
	base := partial.NewState

	// A still-active field means the violation was a stray reopen, not a
	// topic handoff. Keep the active topic; steering handles the model
	// next turn.
	if base.CurrentFieldKey != "" {
		return partial, nil
	}

	for _, key := range tools.FieldKeys {
		if state.IsCompleted(base, key) {
			continue
		}
		opened := false
		for _, f := range base.Fields {
			if f.Key == key {
				opened = true
				break
			}
		}
		if opened {
			continue
		}

		call := llm.ToolCall{
			Name: tools.ToolStartTopic,
			Args: mustJSON(map[string]string{
				"field_key":  key,
				"field_name": key,
				"question":   fmt.Sprintf("🤖 Cofounder\n\nმოდი გადავიდეთ შემდეგ თემაზე: %s. რას გვეტყვი ამაზე?", key),
			}),
		}
		started, err := s.executor.Execute(call, base)
		if err != nil {
			return partial, err
		}
		partial.Question = started.Question
		partial.NewField = started.NewField
		partial.NewState = started.NewState
		return partial, nil
	}

	return partial, executor.ErrFieldCompleted
}

func (s *chatService) interruptWithClarification(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.Session,
	convState state.State,
	sessionMemory memorytrack.Memory,
	userMessage, clarification string,
) (*dto.SendMessageResponse, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback() }()

	if err := uow.SessionMemoryRepository().Upsert(ctx, &sessionMemory); err != nil {
		return nil, err
	}
	if err := s.syncFields(ctx, uow, convState); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().CreateBatch(ctx, []*entity.ChatMessage{
		newChatMessage(session.Id, constant.ChatMessageRoleUser, userMessage),
		newChatMessage(session.Id, constant.ChatMessageRoleModel, clarification),
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.stateRepo.Save(convState)

	return &dto.SendMessageResponse{
		SessionId:     session.Id,
		Reply:         clarification,
		Clarification: clarification,
	}, nil
}

func (s *chatService) History(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatHistoryItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ChatHistoryItemResponse, len(messages))
	for i, m := range messages {
		items[i] = &dto.ChatHistoryItemResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return items, nil
}

// loadState returns the cached conversation state or rebuilds it from the
// persisted field rows.
func (s *chatService) loadState(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (state.State, error) {
	if cached, found := s.stateRepo.Get(sessionId); found {
		return cached, nil
	}

	fields, err := uow.PassportFieldRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "order_index"},
	)
	if err != nil {
		return state.State{}, err
	}

	rebuilt := state.New(sessionId)
	rebuilt.Fields = fields
	for _, f := range fields {
		switch f.Status {
		case state.FieldStatusComplete:
			rebuilt.CompletedKeys = append(rebuilt.CompletedKeys, f.Key)
		case state.FieldStatusActive:
			rebuilt.CurrentFieldKey = f.Key
			rebuilt.QuestionsAsked = f.QuestionCount
		}
	}
	return rebuilt, nil
}

func (s *chatService) loadMemory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (memorytrack.Memory, error) {
	stored, err := uow.SessionMemoryRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return memorytrack.Memory{}, err
	}
	if stored == nil {
		return memorytrack.NewMemory(sessionId), nil
	}
	return *stored, nil
}

func (s *chatService) recentHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]llm.Message, error) {
	stored, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	if len(stored) > historyWindow {
		stored = stored[len(stored)-historyWindow:]
	}

	history := make([]llm.Message, len(stored))
	for i, m := range stored {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return history, nil
}

// buildMessages assembles the system turn with steering context, the stored
// history window, and the fresh user message.
func (s *chatService) buildMessages(
	session *entity.Session,
	convState state.State,
	sessionMemory memorytrack.Memory,
	history []llm.Message,
	userMessage, extraSteering string,
) []llm.Message {
	var system strings.Builder
	system.WriteString(constant.MentorSystemPromptV1)

	if len(convState.CompletedKeys) > 0 {
		system.WriteString(fmt.Sprintf(constant.CompletedFieldsSteeringPromptV1, strings.Join(convState.CompletedKeys, ", ")))
	}

	if convState.CurrentFieldKey != "" {
		rec := s.depthFor(session, convState, convState.CurrentFieldKey)
		system.WriteString(fmt.Sprintf(constant.DepthSteeringPromptV1, convState.CurrentFieldKey, rec.Count))
	}

	if summary := memorytrack.Summary(sessionMemory); summary != "" {
		system.WriteString(fmt.Sprintf(constant.MemorySteeringPromptV1, summary))
	}

	if extraSteering != "" {
		system.WriteString(extraSteering)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: system.String()})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})
	return messages
}

func (s *chatService) persistTurn(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.Session,
	convState state.State,
	sessionMemory memorytrack.Memory,
	userMessage, reply string,
	result executor.Result,
) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback() }()

	if err := s.syncFields(ctx, uow, convState); err != nil {
		return err
	}
	if err := uow.SessionMemoryRepository().Upsert(ctx, &sessionMemory); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().CreateBatch(ctx, []*entity.ChatMessage{
		newChatMessage(session.Id, constant.ChatMessageRoleUser, userMessage),
		newChatMessage(session.Id, constant.ChatMessageRoleModel, reply),
	}); err != nil {
		return err
	}

	if result.SessionEnd != nil {
		now := time.Now()
		score := result.SessionEnd.Score
		session.Status = entity.SessionStatusCompleted
		session.Score = &score
		session.Assessment = result.SessionEnd.Assessment
		session.CompletedAt = &now
		if err := uow.SessionRepository().Update(ctx, session); err != nil {
			return err
		}
	} else if session.Status == entity.SessionStatusIntro {
		session.Status = entity.SessionStatusInProgress
		if err := uow.SessionRepository().Update(ctx, session); err != nil {
			return err
		}
	}

	return uow.Commit()
}

// syncFields upserts every field row from the in-memory state. Row count per
// session is small (the passport caps out around twenty fields), so writing
// them all keeps the reconciliation trivial.
func (s *chatService) syncFields(ctx context.Context, uow unitofwork.UnitOfWork, convState state.State) error {
	repo := uow.PassportFieldRepository()
	for i := range convState.Fields {
		field := convState.Fields[i]
		existing, err := repo.FindOne(ctx,
			specification.BySessionID{SessionID: field.SessionId},
			specification.ByFieldKey{FieldKey: field.Key},
		)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := repo.Create(ctx, &field); err != nil {
				return err
			}
			continue
		}
		field.Id = existing.Id
		if err := repo.Update(ctx, &field); err != nil {
			return err
		}
	}
	return nil
}

func (s *chatService) publishEffects(ctx context.Context, session *entity.Session, result executor.Result) {
	if result.CompletedFieldKey != "" {
		payload, err := json.Marshal(dto.FieldCompletedMessage{
			SessionId: session.Id,
			FieldKey:  result.CompletedFieldKey,
			Content:   result.CompletedFieldContent,
		})
		if err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				s.log.Warn("CHAT", "Failed to publish field completed message", map[string]interface{}{
					"session_id": session.Id,
					"field_key":  result.CompletedFieldKey,
					"error":      err.Error(),
				})
			}
		}
	}

	if result.SessionEnd != nil {
		evt := events.NewSessionCompleted(session.Id, result.SessionEnd.Score, result.SessionEnd.FieldsCompleted)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("CHAT", "Failed to publish session completed event", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}
}

// modelReply picks the user-visible text for the turn: the question produced
// by the tool transition, the end message, or the model's free text.
func modelReply(resp *llm.ToolResponse, result executor.Result) string {
	if result.SessionEnd != nil && result.SessionEnd.Message != "" {
		return result.SessionEnd.Message
	}
	if result.Question != "" {
		return result.Question
	}
	if resp.Text != "" {
		return resp.Text
	}
	return "🤖 Cofounder\n\nგთხოვ, მომიყევი მეტი შენს იდეაზე."
}

// depthFor derives the adaptive question-count recommendation for a field
// from the founder's self-reported knowledge and prior answer quality.
func (s *chatService) depthFor(session *entity.Session, convState state.State, fieldKey string) depth.Recommendation {
	knowledge := depth.KnowledgeIntermediate
	if session.Experience != nil && session.Experience.StartupKnowledge != "" {
		knowledge = depth.Knowledge(session.Experience.StartupKnowledge)
	}
	quality := depth.AssessPreviousQuality(convState.Fields, len(convState.CompletedKeys))
	return depth.Compute(fieldKey, knowledge, quality)
}

func (s *chatService) buildSendMessageResponse(session *entity.Session, convState state.State, reply string, result executor.Result) *dto.SendMessageResponse {
	res := &dto.SendMessageResponse{
		SessionId: session.Id,
		Reply:     reply,
	}

	if result.NewField != nil {
		rec := s.depthFor(session, convState, result.NewField.Key)
		res.NewField = &dto.FieldEventDTO{
			Id:               result.NewField.Id,
			FieldKey:         result.NewField.Key,
			Name:             result.NewField.Name,
			Icon:             result.NewField.Icon,
			Question:         result.Question,
			PlannedQuestions: rec.Count,
			DepthReason:      result.NewField.DepthReason,
		}
	}
	if result.CompletedFieldKey != "" {
		res.CompletedField = &dto.CompletedFieldDTO{
			FieldKey: result.CompletedFieldKey,
			Content:  result.CompletedFieldContent,
		}
		if result.NewField == nil && result.SessionEnd == nil && len(convState.CompletedKeys) < s.minCompletedFields {
			res.PolicyNotice = fmt.Sprintf(
				"topic completed without a next topic before reaching %d fields", s.minCompletedFields)
		}
	}
	if result.SessionEnd != nil {
		res.SessionEnd = &dto.SessionEndDTO{
			Message:         result.SessionEnd.Message,
			Score:           result.SessionEnd.Score,
			Assessment:      result.SessionEnd.Assessment,
			FieldsCompleted: result.SessionEnd.FieldsCompleted,
		}
	}
	return res
}

func newChatMessage(sessionId uuid.UUID, role, content string) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

func mustJSON(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
