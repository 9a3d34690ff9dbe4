// Package executor translates model-issued tool invocations into
// conversation-state transitions and displayable results.
package executor

import (
	"errors"
	"fmt"
	"log"

	"idea-passport-be/pkg/llm"
	"idea-passport-be/pkg/passport/state"
	"idea-passport-be/pkg/passport/tools"

	"github.com/google/uuid"
)

// ErrFieldCompleted is returned when the model tries to open a field key
// that is already in the completed list.
var ErrFieldCompleted = errors.New("field already completed")

// SessionEnd is the payload returned by the end_session tool. FieldsCompleted
// comes from State, not from the model's own claim.
type SessionEnd struct {
	Message         string
	Score           float64
	Assessment      string
	FieldsCompleted []string
}

// Result is the externally observable outcome of one invocation (or of a
// merged batch). Nil/empty slots mean the invocation had no such effect.
type Result struct {
	Question              string
	NewField              *state.Field
	CompletedFieldKey     string
	CompletedFieldContent string
	SessionEnd            *SessionEnd

	NewState state.State
}

// Executor applies tool invocations to conversation state.
type Executor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute applies a single invocation against s and returns the transition
// result. Protocol violations (unknown tool, followup without an active
// field, opening a completed field) come back as errors with s untouched,
// except that a complete_topic with an invalid chained next_topic keeps the
// completion in the result and errors only on the handoff.
func (e *Executor) Execute(call llm.ToolCall, s state.State) (Result, error) {
	decoded, err := tools.DecodeArgs(call.Name, call.Args)
	if err != nil {
		return Result{NewState: s}, err
	}

	e.logger.Printf("[EXECUTOR] Executing tool: %s", call.Name)

	switch p := decoded.(type) {
	case *tools.StartTopicParams:
		return e.startTopic(&p.TopicDescriptor, s)

	case *tools.AskFollowupParams:
		next, err := state.IncrementQuestionCount(s)
		if err != nil {
			return Result{NewState: s}, fmt.Errorf("ask_followup: %w", err)
		}
		next, err = state.RecordQuestion(next, p.Question)
		if err != nil {
			return Result{NewState: s}, fmt.Errorf("ask_followup: %w", err)
		}
		return Result{Question: p.Question, NewState: next}, nil

	case *tools.CompleteTopicParams:
		current, ok := state.CurrentField(s)
		if !ok {
			return Result{NewState: s}, fmt.Errorf("complete_topic: %w", state.ErrNoActiveField)
		}
		// The active field is implicit context: completing by key supplied
		// from the model would let it complete the wrong field.
		next, err := state.CompleteTopic(s, current.Key, p.Content)
		if err != nil {
			return Result{NewState: s}, err
		}
		res := Result{
			CompletedFieldKey:     current.Key,
			CompletedFieldContent: p.Content,
			NewState:              next,
		}
		if p.NextTopic != nil {
			started, err := e.startTopic(p.NextTopic, next)
			if err != nil {
				// The completion itself was valid; keep it and error
				// only on the invalid handoff so the summary the user
				// earned is never discarded.
				return res, fmt.Errorf("complete_topic: %w", err)
			}
			res.NewField = started.NewField
			res.Question = started.Question
			res.NewState = started.NewState
		}
		return res, nil

	case *tools.EndSessionParams:
		next := state.EndSession(s)
		return Result{
			SessionEnd: &SessionEnd{
				Message:         p.Message,
				Score:           p.Score,
				Assessment:      p.Assessment,
				FieldsCompleted: append([]string{}, next.CompletedKeys...),
			},
			NewState: next,
		}, nil

	default:
		return Result{NewState: s}, fmt.Errorf("%w: %q", tools.ErrUnknownTool, call.Name)
	}
}

func (e *Executor) startTopic(topic *tools.TopicDescriptor, s state.State) (Result, error) {
	if state.IsCompleted(s, topic.FieldKey) {
		return Result{NewState: s}, fmt.Errorf("start_topic %q: %w", topic.FieldKey, ErrFieldCompleted)
	}
	if !tools.KnownFieldKey(topic.FieldKey) {
		e.logger.Printf("[EXECUTOR] Non-enumerated field key %q, accepting", topic.FieldKey)
	}

	field := state.Field{
		Id:            uuid.New(),
		SessionId:     s.SessionId,
		Key:           topic.FieldKey,
		Name:          topic.FieldName,
		Icon:          topic.FieldIcon,
		Status:        state.FieldStatusActive,
		Questions:     []string{topic.Question},
		Answers:       []string{},
		OrderIndex:    len(s.Fields),
		QuestionCount: 1,
	}

	next := state.StartTopic(s, field)
	return Result{
		Question: topic.Question,
		NewField: &field,
		NewState: next,
	}, nil
}

// ExecuteAll applies a batch strictly in order, each invocation against the
// state produced by the previous one. Result slots are merged last-non-nil;
// the first failing invocation aborts the batch and its error is returned
// together with the progress made before it.
func (e *Executor) ExecuteAll(calls []llm.ToolCall, initial state.State) (Result, error) {
	current := initial
	combined := Result{NewState: current}

	for _, call := range calls {
		res, err := e.Execute(call, current)

		// Effects a partially-applied invocation did make (a completion
		// with an invalid handoff) are kept alongside the error.
		if res.Question != "" {
			combined.Question = res.Question
		}
		if res.NewField != nil {
			combined.NewField = res.NewField
		}
		if res.CompletedFieldKey != "" {
			combined.CompletedFieldKey = res.CompletedFieldKey
			combined.CompletedFieldContent = res.CompletedFieldContent
		}
		if res.SessionEnd != nil {
			combined.SessionEnd = res.SessionEnd
		}

		current = res.NewState
		combined.NewState = current

		if err != nil {
			return combined, err
		}
	}

	return combined, nil
}
