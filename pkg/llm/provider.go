package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "model", "system"
	Content string
}

const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// Schema describes a tool parameter shape declaratively. It serializes to
// the wire format the Gemini function-calling API expects.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
}

// Tool is a single operation the model may invoke.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// ToolCall is a model-issued tool invocation. Args stay raw here; decoding
// against the per-tool schema is the caller's job.
type ToolCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// ToolResponse is a single model turn: free text, tool invocations, either,
// both, or (transiently) neither.
type ToolResponse struct {
	Text  string
	Calls []ToolCall
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// ChatWithTools sends history plus a tool schema and returns whatever
	// the model produced: text, tool invocations, or both.
	ChatWithTools(ctx context.Context, history []Message, tools []Tool, options ...Option) (*ToolResponse, error)
}

// GenerateJSON prompts the provider and unmarshals the reply into out.
// Models often wrap JSON in markdown fences despite instructions not to.
func GenerateJSON(ctx context.Context, p LLMProvider, prompt string, out interface{}, options ...Option) error {
	raw, err := p.Generate(ctx, prompt, options...)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(StripJSONFences(raw)), out)
}

// StripJSONFences removes a surrounding ```json ... ``` block if present.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
