package service

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sort"
	"testing"
	"time"

	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/entity"
	"idea-passport-be/internal/repository/contract"
	"idea-passport-be/internal/repository/memory"
	"idea-passport-be/internal/repository/specification"
	"idea-passport-be/internal/repository/unitofwork"
	"idea-passport-be/pkg/llm"
	pktNats "idea-passport-be/pkg/nats"
	"idea-passport-be/pkg/passport/depth"
	"idea-passport-be/pkg/passport/executor"
	"idea-passport-be/pkg/passport/memorytrack"
	"idea-passport-be/pkg/passport/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	cp := *s
	r.sessions[s.Id] = &cp
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *entity.Session) error {
	cp := *s
	r.sessions[s.Id] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if s, found := r.sessions[byID.ID]; found {
				cp := *s
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	out := make([]*entity.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

type fakeFieldRepo struct {
	fields []state.Field
}

func (r *fakeFieldRepo) Create(ctx context.Context, f *state.Field) error {
	r.fields = append(r.fields, *f)
	return nil
}

func (r *fakeFieldRepo) Update(ctx context.Context, f *state.Field) error {
	for i := range r.fields {
		if r.fields[i].Id == f.Id {
			r.fields[i] = *f
			return nil
		}
	}
	r.fields = append(r.fields, *f)
	return nil
}

func (r *fakeFieldRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.fields {
		if r.fields[i].Id == id {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeFieldRepo) matches(f state.Field, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			if f.SessionId != s.SessionID {
				return false
			}
		case specification.ByFieldKey:
			if f.Key != s.FieldKey {
				return false
			}
		}
	}
	return true
}

func (r *fakeFieldRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*state.Field, error) {
	for _, f := range r.fields {
		if r.matches(f, specs) {
			cp := f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFieldRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]state.Field, error) {
	out := []state.Field{}
	for _, f := range r.fields {
		if r.matches(f, specs) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *fakeFieldRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeMemoryRepo struct {
	memories map[uuid.UUID]*memorytrack.Memory
}

func (r *fakeMemoryRepo) Upsert(ctx context.Context, m *memorytrack.Memory) error {
	cp := *m
	r.memories[m.SessionId] = &cp
	return nil
}

func (r *fakeMemoryRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*memorytrack.Memory, error) {
	if m, found := r.memories[sessionId]; found {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMemoryRepo) Delete(ctx context.Context, sessionId uuid.UUID) error {
	delete(r.memories, sessionId)
	return nil
}

type fakeChatRepo struct {
	messages []*entity.ChatMessage
}

func (r *fakeChatRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeChatRepo) CreateBatch(ctx context.Context, msgs []*entity.ChatMessage) error {
	for _, m := range msgs {
		cp := *m
		r.messages = append(r.messages, &cp)
	}
	return nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return append([]*entity.ChatMessage{}, r.messages...), nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

type fakeUow struct {
	sessionRepo *fakeSessionRepo
	fieldRepo   *fakeFieldRepo
	memoryRepo  *fakeMemoryRepo
	chatRepo    *fakeChatRepo
	commits     int
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) SessionRepository() contract.SessionRepository             { return u.sessionRepo }
func (u *fakeUow) PassportFieldRepository() contract.PassportFieldRepository { return u.fieldRepo }
func (u *fakeUow) SessionMemoryRepository() contract.SessionMemoryRepository { return u.memoryRepo }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository     { return u.chatRepo }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeLLM struct {
	toolResponses []*llm.ToolResponse
	toolCalls     int
	generateQueue []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	if len(f.generateQueue) == 0 {
		return "{}", nil
	}
	next := f.generateQueue[0]
	f.generateQueue = f.generateQueue[1:]
	return next, nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", nil
}

func (f *fakeLLM) ChatWithTools(ctx context.Context, history []llm.Message, tools []llm.Tool, opts ...llm.Option) (*llm.ToolResponse, error) {
	idx := f.toolCalls
	f.toolCalls++
	if idx >= len(f.toolResponses) {
		return &llm.ToolResponse{}, nil
	}
	return f.toolResponses[idx], nil
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- Harness ---

type chatHarness struct {
	service   IChatService
	uow       *fakeUow
	provider  *fakeLLM
	publisher *capturingPublisher
	stateRepo *memory.StateRepository
	session   *entity.Session
}

func newChatHarness(t *testing.T, provider *fakeLLM, minFields int) *chatHarness {
	t.Helper()

	uow := &fakeUow{
		sessionRepo: &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}},
		fieldRepo:   &fakeFieldRepo{},
		memoryRepo:  &fakeMemoryRepo{memories: map[uuid.UUID]*memorytrack.Memory{}},
		chatRepo:    &fakeChatRepo{},
	}
	session := &entity.Session{
		Id:        uuid.New(),
		Status:    entity.SessionStatusInProgress,
		IdeaText:  "აპლიკაცია ფერმერებისთვის",
		CreatedAt: time.Now(),
	}
	uow.sessionRepo.sessions[session.Id] = session

	stateRepo := memory.NewStateRepository(time.Hour)
	discard := log.New(io.Discard, "", 0)
	publisher := &capturingPublisher{}

	svc := NewChatService(
		&fakeFactory{uow: uow},
		stateRepo,
		provider,
		executor.New(discard),
		memorytrack.NewTracker(provider, discard),
		publisher,
		(*pktNats.Publisher)(nil),
		nopLogger{},
		minFields,
	)

	return &chatHarness{
		service:   svc,
		uow:       uow,
		provider:  provider,
		publisher: publisher,
		stateRepo: stateRepo,
		session:   session,
	}
}

func toolCall(t *testing.T, name string, args map[string]interface{}) llm.ToolCall {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return llm.ToolCall{Name: name, Args: raw}
}

// --- Tests ---

func TestSendMessageFirstTurnStartsProblemTopic(t *testing.T) {
	provider := &fakeLLM{
		toolResponses: []*llm.ToolResponse{
			{Calls: []llm.ToolCall{toolCall(t, "start_topic", map[string]interface{}{
				"field_key":  "problem",
				"field_name": "პრობლემა",
				"question":   "🤖 Cofounder\n\nრა პრობლემას წყვეტს შენი იდეა?",
			})}},
		},
	}
	h := newChatHarness(t, provider, 5)

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "მინდა გავაკეთო სასოფლო აპლიკაცია",
	})
	require.NoError(t, err)

	require.NotNil(t, res.NewField)
	assert.Equal(t, "problem", res.NewField.FieldKey)
	assert.Contains(t, res.Reply, "რა პრობლემას")
	assert.GreaterOrEqual(t, res.NewField.PlannedQuestions, depth.MinQuestions)
	assert.LessOrEqual(t, res.NewField.PlannedQuestions, depth.MaxQuestions)
	assert.Nil(t, res.SessionEnd)

	// Field row persisted as active.
	require.Len(t, h.uow.fieldRepo.fields, 1)
	assert.Equal(t, state.FieldStatusActive, h.uow.fieldRepo.fields[0].Status)

	// Both sides of the turn are stored.
	require.Len(t, h.uow.chatRepo.messages, 2)
	assert.Equal(t, "user", h.uow.chatRepo.messages[0].Role)
	assert.Equal(t, "model", h.uow.chatRepo.messages[1].Role)

	// State cached for the next turn.
	cached, found := h.stateRepo.Get(h.session.Id)
	require.True(t, found)
	assert.Equal(t, "problem", cached.CurrentFieldKey)
}

func TestSendMessageRejectsCompletedSession(t *testing.T) {
	h := newChatHarness(t, &fakeLLM{}, 5)
	h.session.Status = entity.SessionStatusCompleted
	h.uow.sessionRepo.sessions[h.session.Id] = h.session

	_, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "კიდევ ერთი კითხვა",
	})
	require.Error(t, err)
}

func TestSendMessageUnknownSession(t *testing.T) {
	h := newChatHarness(t, &fakeLLM{}, 5)

	_, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: uuid.New(),
		Message:   "გამარჯობა",
	})
	require.Error(t, err)
}

func TestSendMessageCompleteTopicPublishesFieldCompleted(t *testing.T) {
	provider := &fakeLLM{
		toolResponses: []*llm.ToolResponse{
			{Calls: []llm.ToolCall{toolCall(t, "complete_topic", map[string]interface{}{
				"content": "პრობლემა: რესტორნები ვერ პოულობენ მომწოდებლებს",
				"next_topic": map[string]interface{}{
					"field_key":  "solution",
					"field_name": "გადაწყვეტა",
					"question":   "🤖 Cofounder\n\nროგორ წყვეტს შენი იდეა ამ პრობლემას?",
				},
			})}},
		},
	}
	h := newChatHarness(t, provider, 5)

	// An active problem topic is in progress.
	problem := state.Field{
		Id:            uuid.New(),
		SessionId:     h.session.Id,
		Key:           "problem",
		Name:          "პრობლემა",
		Status:        state.FieldStatusActive,
		Questions:     []string{"რა პრობლემას წყვეტს?"},
		Answers:       []string{},
		QuestionCount: 1,
	}
	h.uow.fieldRepo.fields = append(h.uow.fieldRepo.fields, problem)
	h.stateRepo.Save(state.StartTopic(state.New(h.session.Id), problem))

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "რესტორნები ვერ პოულობენ სტაბილურ ადგილობრივ მომწოდებლებს",
	})
	require.NoError(t, err)

	require.NotNil(t, res.CompletedField)
	assert.Equal(t, "problem", res.CompletedField.FieldKey)
	require.NotNil(t, res.NewField)
	assert.Equal(t, "solution", res.NewField.FieldKey)

	// Completion fans out for the async summary consumer.
	require.Len(t, h.publisher.payloads, 1)
	var msg dto.FieldCompletedMessage
	require.NoError(t, json.Unmarshal(h.publisher.payloads[0], &msg))
	assert.Equal(t, "problem", msg.FieldKey)
	assert.Equal(t, h.session.Id, msg.SessionId)

	// The answer was recorded before completion.
	stored, err := h.uow.fieldRepo.FindOne(context.Background(),
		specification.BySessionID{SessionID: h.session.Id},
		specification.ByFieldKey{FieldKey: "problem"},
	)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, state.FieldStatusComplete, stored.Status)
	assert.Contains(t, stored.Answers, "რესტორნები ვერ პოულობენ სტაბილურ ადგილობრივ მომწოდებლებს")
}

func TestSendMessageCompleteTopicWithoutNextFlagsPolicyNotice(t *testing.T) {
	provider := &fakeLLM{
		toolResponses: []*llm.ToolResponse{
			{Calls: []llm.ToolCall{toolCall(t, "complete_topic", map[string]interface{}{
				"content": "პრობლემა ჩამოყალიბდა",
			})}},
		},
	}
	h := newChatHarness(t, provider, 5)

	problem := state.Field{
		Id:        uuid.New(),
		SessionId: h.session.Id,
		Key:       "problem",
		Status:    state.FieldStatusActive,
		Questions: []string{"რა პრობლემას წყვეტს?"},
		Answers:   []string{},
	}
	h.uow.fieldRepo.fields = append(h.uow.fieldRepo.fields, problem)
	h.stateRepo.Save(state.StartTopic(state.New(h.session.Id), problem))

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "მეტი არაფერი მაქვს დასამატებელი",
	})
	require.NoError(t, err)

	require.NotNil(t, res.CompletedField)
	assert.Nil(t, res.NewField)
	assert.NotEmpty(t, res.PolicyNotice)
}

func TestSendMessageHandoffToCompletedFieldRecovers(t *testing.T) {
	provider := &fakeLLM{
		toolResponses: []*llm.ToolResponse{
			{Calls: []llm.ToolCall{toolCall(t, "complete_topic", map[string]interface{}{
				"content": "რესტორნებს არ აქვთ სტაბილური მომწოდებელი",
				"next_topic": map[string]interface{}{
					"field_key":  "solution",
					"field_name": "გადაწყვეტა",
					"question":   "ისევ გადაწყვეტაზე?",
				},
			})}},
		},
	}
	h := newChatHarness(t, provider, 5)

	// solution is already done; problem is the active topic.
	s := state.New(h.session.Id)
	solution := state.Field{Id: uuid.New(), SessionId: h.session.Id, Key: "solution", Status: state.FieldStatusActive, Questions: []string{"როგორ?"}, Answers: []string{}}
	s = state.StartTopic(s, solution)
	s, err := state.CompleteTopic(s, "solution", "მარკეტპლეისი")
	require.NoError(t, err)
	problem := state.Field{Id: uuid.New(), SessionId: h.session.Id, Key: "problem", Status: state.FieldStatusActive, Questions: []string{"რა პრობლემაა?"}, Answers: []string{}, OrderIndex: 1}
	s = state.StartTopic(s, problem)
	h.stateRepo.Save(s)
	h.uow.fieldRepo.fields = append(h.uow.fieldRepo.fields, s.Fields...)

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "მომწოდებლები არასტაბილურია",
	})
	require.NoError(t, err)

	// The completion the model issued survives the bad handoff.
	require.NotNil(t, res.CompletedField)
	assert.Equal(t, "problem", res.CompletedField.FieldKey)
	assert.Equal(t, "რესტორნებს არ აქვთ სტაბილური მომწოდებელი", res.CompletedField.Content)

	// A substitute topic is opened instead of the finished one.
	require.NotNil(t, res.NewField)
	assert.Equal(t, "idea", res.NewField.FieldKey)

	// Exactly one field is active afterwards.
	cached, found := h.stateRepo.Get(h.session.Id)
	require.True(t, found)
	assert.Equal(t, "idea", cached.CurrentFieldKey)
	active := 0
	for _, f := range cached.Fields {
		if f.Status == state.FieldStatusActive {
			active++
		}
	}
	assert.Equal(t, 1, active)

	storedProblem, err := h.uow.fieldRepo.FindOne(context.Background(),
		specification.BySessionID{SessionID: h.session.Id},
		specification.ByFieldKey{FieldKey: "problem"},
	)
	require.NoError(t, err)
	require.NotNil(t, storedProblem)
	assert.Equal(t, state.FieldStatusComplete, storedProblem.Status)
	assert.Equal(t, "რესტორნებს არ აქვთ სტაბილური მომწოდებელი", storedProblem.Content)

	// Completion still fans out to the summary consumer.
	require.Len(t, h.publisher.payloads, 1)
	var msg dto.FieldCompletedMessage
	require.NoError(t, json.Unmarshal(h.publisher.payloads[0], &msg))
	assert.Equal(t, "problem", msg.FieldKey)
}

func TestSendMessageEndSessionCompletesSession(t *testing.T) {
	provider := &fakeLLM{
		toolResponses: []*llm.ToolResponse{
			{Calls: []llm.ToolCall{toolCall(t, "end_session", map[string]interface{}{
				"message":    "🤖 Cofounder\n\nგილოცავ, პასპორტი მზადაა!",
				"assessment": "იდეა პერსპექტიულია",
				"score":      7.5,
			})}},
		},
	}
	h := newChatHarness(t, provider, 2)

	s := state.New(h.session.Id)
	for _, key := range []string{"problem", "solution"} {
		f := state.Field{Id: uuid.New(), SessionId: h.session.Id, Key: key, Status: state.FieldStatusActive, Questions: []string{"q"}, Answers: []string{}}
		s = state.StartTopic(s, f)
		var err error
		s, err = state.CompleteTopic(s, key, "done")
		require.NoError(t, err)
	}
	h.stateRepo.Save(s)

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "მგონი ყველაფერი გითხარი",
	})
	require.NoError(t, err)

	require.NotNil(t, res.SessionEnd)
	assert.InDelta(t, 7.5, res.SessionEnd.Score, 0.001)
	assert.ElementsMatch(t, []string{"problem", "solution"}, res.SessionEnd.FieldsCompleted)

	stored := h.uow.sessionRepo.sessions[h.session.Id]
	assert.Equal(t, entity.SessionStatusCompleted, stored.Status)
	require.NotNil(t, stored.Score)
	assert.InDelta(t, 7.5, *stored.Score, 0.001)
	assert.NotNil(t, stored.CompletedAt)
}

func TestSendMessageEarlyEndIsRetried(t *testing.T) {
	provider := &fakeLLM{
		toolResponses: []*llm.ToolResponse{
			{Calls: []llm.ToolCall{toolCall(t, "end_session", map[string]interface{}{
				"message":    "დასასრული",
				"assessment": "მოკლე",
				"score":      5.0,
			})}},
			{Calls: []llm.ToolCall{toolCall(t, "ask_followup", map[string]interface{}{
				"question": "🤖 Cofounder\n\nკიდევ რა დეტალებს დაამატებდი?",
			})}},
		},
	}
	h := newChatHarness(t, provider, 5)

	// Only one completed field, far below the minimum.
	s := state.New(h.session.Id)
	problem := state.Field{Id: uuid.New(), SessionId: h.session.Id, Key: "problem", Status: state.FieldStatusActive, Questions: []string{"q"}, Answers: []string{}}
	s = state.StartTopic(s, problem)
	h.stateRepo.Save(s)

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "ეგაა და ეგ",
	})
	require.NoError(t, err)

	assert.Nil(t, res.SessionEnd)
	assert.Contains(t, res.Reply, "დეტალებს")
	assert.Equal(t, 2, provider.toolCalls)
	assert.Equal(t, entity.SessionStatusInProgress, h.uow.sessionRepo.sessions[h.session.Id].Status)
}

func TestSendMessageContradictionInterruptsTurn(t *testing.T) {
	extraction := `{"mentioned_entities": [], "competitors": [], "features": [], "numbers": ["500"], "locations": []}`
	contradiction := `{
		"has_contradiction": true,
		"contradiction_details": {
			"field1": "target_users",
			"statement1": "500 რესტორანი",
			"statement2": "50 რესტორანი",
			"explanation": "რაოდენობა ათჯერ შემცირდა"
		},
		"clarification_question": "🤖 Cofounder\n\nადრე თქვი 500 რესტორანი, ახლა 50. რომელია სწორი?"
	}`
	provider := &fakeLLM{generateQueue: []string{extraction, contradiction}}
	h := newChatHarness(t, provider, 5)

	// Existing memory so the contradiction check has context to compare.
	existing := memorytrack.NewMemory(h.session.Id)
	existing.Entities.Numbers = []string{"500 რესტორანი"}
	h.uow.memoryRepo.memories[h.session.Id] = &existing

	targetUsers := state.Field{Id: uuid.New(), SessionId: h.session.Id, Key: "target_users", Status: state.FieldStatusActive, Questions: []string{"ვინ არის კლიენტი?"}, Answers: []string{}}
	h.stateRepo.Save(state.StartTopic(state.New(h.session.Id), targetUsers))

	res, err := h.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		SessionId: h.session.Id,
		Message:   "სამიზნე ბაზარი 50 რესტორანია",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Clarification)
	assert.Equal(t, res.Clarification, res.Reply)
	assert.Nil(t, res.NewField)
	assert.Equal(t, 0, provider.toolCalls, "tool turn must not run on contradiction")

	// The recorded contradiction is persisted.
	stored, err := h.uow.memoryRepo.FindBySessionId(context.Background(), h.session.Id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Contradictions, 1)
	assert.Equal(t, "target_users", stored.Contradictions[0].Field2)

	// The interrupted turn leaves the field transcript untouched; the
	// contradictory answer is not recorded until it is clarified.
	storedField, err := h.uow.fieldRepo.FindOne(context.Background(),
		specification.BySessionID{SessionID: h.session.Id},
		specification.ByFieldKey{FieldKey: "target_users"},
	)
	require.NoError(t, err)
	require.NotNil(t, storedField)
	assert.NotContains(t, storedField.Answers, "სამიზნე ბაზარი 50 რესტორანია")
	cached, found := h.stateRepo.Get(h.session.Id)
	require.True(t, found)
	for _, f := range cached.Fields {
		assert.NotContains(t, f.Answers, "სამიზნე ბაზარი 50 რესტორანია")
	}
}
