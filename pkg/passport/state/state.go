// Package state holds the conversation state machine for a mentoring
// session. All transitions are pure functions: they return a new State and
// never mutate their input.
package state

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoActiveField = errors.New("no active field")
	ErrFieldNotFound = errors.New("field not found")
)

type FieldStatus string

const (
	FieldStatusPending  FieldStatus = "pending"
	FieldStatusActive   FieldStatus = "active"
	FieldStatusComplete FieldStatus = "complete"
)

// Field is one passport section under discussion.
type Field struct {
	Id            uuid.UUID
	SessionId     uuid.UUID
	Key           string
	Name          string
	Icon          string
	Status        FieldStatus
	Questions     []string
	Answers       []string
	Content       string
	OrderIndex    int
	QuestionCount int
	DepthReason   string
}

// State is the full conversation position. QuestionsAsked counts questions
// on the current topic only and resets when a new topic starts.
type State struct {
	SessionId       uuid.UUID
	CurrentFieldKey string
	QuestionsAsked  int
	Fields          []Field
	CompletedKeys   []string
	Ended           bool
}

func New(sessionId uuid.UUID) State {
	return State{
		SessionId:     sessionId,
		Fields:        []Field{},
		CompletedKeys: []string{},
	}
}

func clone(s State) State {
	next := s
	next.Fields = make([]Field, len(s.Fields))
	copy(next.Fields, s.Fields)
	for i := range next.Fields {
		next.Fields[i].Questions = append([]string{}, s.Fields[i].Questions...)
		next.Fields[i].Answers = append([]string{}, s.Fields[i].Answers...)
	}
	next.CompletedKeys = append([]string{}, s.CompletedKeys...)
	return next
}

// StartTopic makes field the single active field. A previously active field
// stays in the list with its status unchanged; completing it is a separate
// transition.
func StartTopic(s State, field Field) State {
	next := clone(s)
	next.CurrentFieldKey = field.Key
	next.QuestionsAsked = 1
	next.Fields = append(next.Fields, field)
	return next
}

// IncrementQuestionCount counts one more question on the active topic.
func IncrementQuestionCount(s State) (State, error) {
	if s.CurrentFieldKey == "" {
		return s, ErrNoActiveField
	}
	next := clone(s)
	next.QuestionsAsked++
	for i := range next.Fields {
		if next.Fields[i].Key == next.CurrentFieldKey {
			next.Fields[i].QuestionCount++
			break
		}
	}
	return next, nil
}

// RecordQuestion appends a question to the active field's transcript.
func RecordQuestion(s State, question string) (State, error) {
	if s.CurrentFieldKey == "" {
		return s, ErrNoActiveField
	}
	next := clone(s)
	for i := range next.Fields {
		if next.Fields[i].Key == next.CurrentFieldKey {
			next.Fields[i].Questions = append(next.Fields[i].Questions, question)
			return next, nil
		}
	}
	return s, ErrFieldNotFound
}

// RecordAnswer appends the user's answer to the active field's transcript.
func RecordAnswer(s State, answer string) (State, error) {
	if s.CurrentFieldKey == "" {
		return s, ErrNoActiveField
	}
	next := clone(s)
	for i := range next.Fields {
		if next.Fields[i].Key == next.CurrentFieldKey {
			next.Fields[i].Answers = append(next.Fields[i].Answers, answer)
			return next, nil
		}
	}
	return s, ErrFieldNotFound
}

// CompleteTopic marks fieldKey complete with its final content. Completing
// the active field clears the active slot.
func CompleteTopic(s State, fieldKey, content string) (State, error) {
	next := clone(s)
	found := false
	for i := range next.Fields {
		if next.Fields[i].Key == fieldKey {
			next.Fields[i].Status = FieldStatusComplete
			next.Fields[i].Content = content
			found = true
			break
		}
	}
	if !found {
		return s, ErrFieldNotFound
	}
	if !IsCompleted(next, fieldKey) {
		next.CompletedKeys = append(next.CompletedKeys, fieldKey)
	}
	if next.CurrentFieldKey == fieldKey {
		next.CurrentFieldKey = ""
		next.QuestionsAsked = 0
	}
	return next, nil
}

// EndSession closes the conversation. Fields are kept for the final report.
func EndSession(s State) State {
	next := clone(s)
	next.Ended = true
	next.CurrentFieldKey = ""
	next.QuestionsAsked = 0
	return next
}

// CurrentField returns the active field, if any.
func CurrentField(s State) (Field, bool) {
	if s.CurrentFieldKey == "" {
		return Field{}, false
	}
	for _, f := range s.Fields {
		if f.Key == s.CurrentFieldKey {
			return f, true
		}
	}
	return Field{}, false
}

// IsCompleted reports whether fieldKey is in the completed list.
func IsCompleted(s State, fieldKey string) bool {
	for _, k := range s.CompletedKeys {
		if k == fieldKey {
			return true
		}
	}
	return false
}
