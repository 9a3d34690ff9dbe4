package tools

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when a model-issued invocation names a tool
// that is not declared in Definitions. Schema drift must be observable.
var ErrUnknownTool = errors.New("unknown tool")

// TopicDescriptor names a field to open plus its first question. Used by
// start_topic directly and by complete_topic's next_topic.
type TopicDescriptor struct {
	FieldKey  string `json:"field_key"`
	FieldName string `json:"field_name"`
	FieldIcon string `json:"field_icon"`
	Question  string `json:"question"`
}

type StartTopicParams struct {
	TopicDescriptor
}

type AskFollowupParams struct {
	Question string `json:"question"`
	Reason   string `json:"reason,omitempty"`
}

type CompleteTopicParams struct {
	Content   string           `json:"content"`
	NextTopic *TopicDescriptor `json:"next_topic,omitempty"`
}

type EndSessionParams struct {
	Message    string  `json:"message"`
	Assessment string  `json:"assessment"`
	Score      float64 `json:"score"` // 1-10
}

// DecodeArgs parses an invocation's name first, then validates and decodes
// its raw arguments against the matching params struct. The returned value
// is one of *StartTopicParams, *AskFollowupParams, *CompleteTopicParams,
// *EndSessionParams.
func DecodeArgs(name string, raw json.RawMessage) (interface{}, error) {
	switch name {
	case ToolStartTopic:
		var p StartTopicParams
		if err := decodeStrict(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", name, err)
		}
		if p.FieldKey == "" || p.Question == "" {
			return nil, fmt.Errorf("decode %s args: field_key and question are required", name)
		}
		return &p, nil
	case ToolAskFollowup:
		var p AskFollowupParams
		if err := decodeStrict(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", name, err)
		}
		if p.Question == "" {
			return nil, fmt.Errorf("decode %s args: question is required", name)
		}
		return &p, nil
	case ToolCompleteTopic:
		var p CompleteTopicParams
		if err := decodeStrict(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", name, err)
		}
		if p.Content == "" {
			return nil, fmt.Errorf("decode %s args: content is required", name)
		}
		if p.NextTopic != nil && (p.NextTopic.FieldKey == "" || p.NextTopic.Question == "") {
			return nil, fmt.Errorf("decode %s args: next_topic requires field_key and question", name)
		}
		return &p, nil
	case ToolEndSession:
		var p EndSessionParams
		if err := decodeStrict(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", name, err)
		}
		if p.Score < 1 || p.Score > 10 {
			return nil, fmt.Errorf("decode %s args: score %v outside 1-10", name, p.Score)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}

func decodeStrict(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return errors.New("empty arguments")
	}
	return json.Unmarshal(raw, out)
}

// KnownFieldKey reports whether the key belongs to the enumerated set.
func KnownFieldKey(key string) bool {
	for _, k := range FieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
