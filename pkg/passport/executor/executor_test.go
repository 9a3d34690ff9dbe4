package executor

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"reflect"
	"testing"

	"idea-passport-be/pkg/llm"
	"idea-passport-be/pkg/passport/state"
	"idea-passport-be/pkg/passport/tools"

	"github.com/google/uuid"
)

func newTestExecutor() *Executor {
	return New(log.New(io.Discard, "", 0))
}

func call(name string, args map[string]interface{}) llm.ToolCall {
	raw, _ := json.Marshal(args)
	return llm.ToolCall{Name: name, Args: raw}
}

func startProblemCall() llm.ToolCall {
	return call("start_topic", map[string]interface{}{
		"field_key":  "problem",
		"field_name": "პრობლემა",
		"field_icon": "❓",
		"question":   "რა პრობლემას აგვარებს თქვენი იდეა?",
	})
}

func TestStartTopic(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, err := e.Execute(startProblemCall(), s)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Question != "რა პრობლემას აგვარებს თქვენი იდეა?" {
		t.Errorf("Question = %q", res.Question)
	}
	if res.NewField == nil || res.NewField.Key != "problem" {
		t.Fatalf("NewField = %+v", res.NewField)
	}
	if res.NewField.Status != state.FieldStatusActive {
		t.Errorf("field status = %q, want active", res.NewField.Status)
	}
	if res.NewState.CurrentFieldKey != "problem" {
		t.Errorf("CurrentFieldKey = %q", res.NewState.CurrentFieldKey)
	}
}

func TestAskFollowupWithoutActiveField(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	_, err := e.Execute(call("ask_followup", map[string]interface{}{"question": "რატომ?"}), s)
	if !errors.Is(err, state.ErrNoActiveField) {
		t.Fatalf("err = %v, want ErrNoActiveField", err)
	}
}

func TestCompleteTopicWithNextTopic(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, err := e.Execute(startProblemCall(), s)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	res, err = e.Execute(call("complete_topic", map[string]interface{}{
		"content": "მომხმარებლებს უჭირთ ჩანაწერების ორგანიზება",
		"next_topic": map[string]interface{}{
			"field_key":  "solution",
			"field_name": "გადაწყვეტა",
			"field_icon": "💡",
			"question":   "როგორ აგვარებს ამას თქვენი პროდუქტი?",
		},
	}), res.NewState)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if res.CompletedFieldKey != "problem" {
		t.Errorf("CompletedFieldKey = %q, want problem", res.CompletedFieldKey)
	}
	if res.CompletedFieldContent == "" {
		t.Error("CompletedFieldContent is empty")
	}
	if res.NewField == nil || res.NewField.Key != "solution" {
		t.Fatalf("NewField = %+v, want solution", res.NewField)
	}
	if res.Question != "როგორ აგვარებს ამას თქვენი პროდუქტი?" {
		t.Errorf("Question = %q", res.Question)
	}
	if res.NewState.CurrentFieldKey != "solution" {
		t.Errorf("CurrentFieldKey = %q, want solution", res.NewState.CurrentFieldKey)
	}
	if !state.IsCompleted(res.NewState, "problem") {
		t.Error("problem not in completed list")
	}
}

func TestCompleteTopicUsesImplicitActiveField(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, _ := e.Execute(startProblemCall(), s)

	// The model cannot name a field to complete; the active one is used.
	res, err := e.Execute(call("complete_topic", map[string]interface{}{
		"content": "summary",
	}), res.NewState)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.CompletedFieldKey != "problem" {
		t.Errorf("CompletedFieldKey = %q, want problem", res.CompletedFieldKey)
	}
}

func TestCompleteTopicKeepsCompletionOnInvalidHandoff(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, _ := e.Execute(call("start_topic", map[string]interface{}{
		"field_key":  "solution",
		"field_name": "გადაწყვეტა",
		"question":   "როგორ წყვეტს?",
	}), s)
	res, _ = e.Execute(call("complete_topic", map[string]interface{}{"content": "აპლიკაციით"}), res.NewState)
	res, _ = e.Execute(startProblemCall(), res.NewState)

	// next_topic names a field that is already completed.
	res, err := e.Execute(call("complete_topic", map[string]interface{}{
		"content": "ჩანაწერების ქაოსი",
		"next_topic": map[string]interface{}{
			"field_key":  "solution",
			"field_name": "გადაწყვეტა",
			"question":   "ისევ გადაწყვეტაზე?",
		},
	}), res.NewState)
	if !errors.Is(err, ErrFieldCompleted) {
		t.Fatalf("err = %v, want ErrFieldCompleted", err)
	}

	// The valid completion half of the call survives the handoff error.
	if res.CompletedFieldKey != "problem" {
		t.Errorf("CompletedFieldKey = %q, want problem", res.CompletedFieldKey)
	}
	if res.CompletedFieldContent != "ჩანაწერების ქაოსი" {
		t.Errorf("CompletedFieldContent = %q", res.CompletedFieldContent)
	}
	if !state.IsCompleted(res.NewState, "problem") {
		t.Error("problem not in completed list")
	}
	if res.NewState.CurrentFieldKey != "" {
		t.Errorf("CurrentFieldKey = %q, want cleared", res.NewState.CurrentFieldKey)
	}
	active := 0
	for _, f := range res.NewState.Fields {
		if f.Status == state.FieldStatusActive {
			active++
		}
	}
	if active != 0 {
		t.Errorf("active fields = %d, want 0", active)
	}
}

func TestStartCompletedFieldRejected(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, _ := e.Execute(startProblemCall(), s)
	res, _ = e.Execute(call("complete_topic", map[string]interface{}{"content": "done"}), res.NewState)

	_, err := e.Execute(startProblemCall(), res.NewState)
	if !errors.Is(err, ErrFieldCompleted) {
		t.Fatalf("err = %v, want ErrFieldCompleted", err)
	}
}

func TestEndSessionTakesCompletedKeysFromState(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, _ := e.Execute(startProblemCall(), s)
	res, _ = e.Execute(call("complete_topic", map[string]interface{}{"content": "done"}), res.NewState)

	res, err := e.Execute(call("end_session", map[string]interface{}{
		"message":    "გილოცავთ!",
		"assessment": "კარგი საწყისი წერტილი",
		"score":      7,
	}), res.NewState)
	if err != nil {
		t.Fatalf("end_session: %v", err)
	}
	if res.SessionEnd == nil {
		t.Fatal("SessionEnd is nil")
	}
	if !reflect.DeepEqual(res.SessionEnd.FieldsCompleted, []string{"problem"}) {
		t.Errorf("FieldsCompleted = %v, want [problem]", res.SessionEnd.FieldsCompleted)
	}
	if res.SessionEnd.Score != 7 {
		t.Errorf("Score = %v, want 7", res.SessionEnd.Score)
	}
	if !res.NewState.Ended {
		t.Error("Ended = false")
	}
}

func TestEndSessionScoreOutOfRange(t *testing.T) {
	e := newTestExecutor()
	_, err := e.Execute(call("end_session", map[string]interface{}{
		"message":    "m",
		"assessment": "a",
		"score":      11,
	}), state.New(uuid.New()))
	if err == nil {
		t.Fatal("expected error for score 11")
	}
}

func TestUnknownToolDoesNotMutateState(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())
	res, _ := e.Execute(startProblemCall(), s)
	before := res.NewState

	got, err := e.Execute(call("delete_everything", map[string]interface{}{"x": 1}), before)
	if !errors.Is(err, tools.ErrUnknownTool) {
		t.Fatalf("err = %v, want ErrUnknownTool", err)
	}
	if !reflect.DeepEqual(got.NewState, before) {
		t.Error("state mutated by unknown tool")
	}
}

func TestExecuteAllBatchOrderAndMerge(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, err := e.ExecuteAll([]llm.ToolCall{
		startProblemCall(),
		call("ask_followup", map[string]interface{}{"question": "ვის აქვს ეს პრობლემა?"}),
	}, s)
	if err != nil {
		t.Fatalf("ExecuteAll: %v", err)
	}

	// Later non-empty slots overwrite; field list accumulates.
	if res.Question != "ვის აქვს ეს პრობლემა?" {
		t.Errorf("Question = %q", res.Question)
	}
	if res.NewField == nil || res.NewField.Key != "problem" {
		t.Errorf("NewField = %+v", res.NewField)
	}
	if res.NewState.QuestionsAsked != 2 {
		t.Errorf("QuestionsAsked = %d, want 2", res.NewState.QuestionsAsked)
	}
}

func TestExecuteAllAbortsOnError(t *testing.T) {
	e := newTestExecutor()
	s := state.New(uuid.New())

	res, err := e.ExecuteAll([]llm.ToolCall{
		startProblemCall(),
		call("nonsense_tool", map[string]interface{}{}),
		call("ask_followup", map[string]interface{}{"question": "unreachable"}),
	}, s)
	if !errors.Is(err, tools.ErrUnknownTool) {
		t.Fatalf("err = %v, want ErrUnknownTool", err)
	}
	// Progress before the failure is kept.
	if res.NewState.CurrentFieldKey != "problem" {
		t.Errorf("CurrentFieldKey = %q, want problem", res.NewState.CurrentFieldKey)
	}
	if res.NewState.QuestionsAsked != 1 {
		t.Errorf("QuestionsAsked = %d, want 1 (followup must not run)", res.NewState.QuestionsAsked)
	}
}
