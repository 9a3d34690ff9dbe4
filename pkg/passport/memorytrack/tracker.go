package memorytrack

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"idea-passport-be/pkg/llm"
)

// CheckResult is the outcome of a contradiction check.
type CheckResult struct {
	HasContradiction      bool          `json:"has_contradiction"`
	Details               *CheckDetails `json:"contradiction_details,omitempty"`
	ClarificationQuestion string        `json:"clarification_question,omitempty"`
}

type CheckDetails struct {
	Field1      string `json:"field1"`
	Field2      string `json:"field2,omitempty"`
	Statement1  string `json:"statement1"`
	Statement2  string `json:"statement2"`
	Explanation string `json:"explanation"`
}

// Tracker runs LLM-backed entity extraction and contradiction checks.
// Both are auxiliary enrichment: any transport or parsing failure is logged
// and degraded, never propagated to the turn.
type Tracker struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewTracker(provider llm.LLMProvider, logger *log.Logger) *Tracker {
	return &Tracker{provider: provider, logger: logger}
}

// UpdateWithAnswer extracts entities from the user's answer and merges them
// into memory. On failure the memory is returned unchanged.
func (t *Tracker) UpdateWithAnswer(ctx context.Context, m Memory, answer, fieldKey, ideaContext string) Memory {
	if strings.TrimSpace(answer) == "" {
		return m
	}

	prompt := buildExtractionPrompt(answer, fieldKey, ideaContext)

	var extracted Entities
	if err := llm.GenerateJSON(ctx, t.provider, prompt, &extracted, llm.WithTemperature(0.2)); err != nil {
		t.logger.Printf("[MEMORY] Entity extraction failed, skipping update: %v", err)
		return m
	}

	next := cloneMemory(m)
	next.Entities = MergeEntities(m.Entities, extracted)
	return next
}

// CheckContradiction asks the model whether the answer contradicts prior
// memory. On a hit, the contradiction is recorded in the returned memory.
// On failure the result degrades to "no contradiction".
func (t *Tracker) CheckContradiction(ctx context.Context, m Memory, answer, fieldKey string) (CheckResult, Memory) {
	summary := Summary(m)
	if strings.TrimSpace(answer) == "" || summary == "" {
		return CheckResult{}, m
	}

	prompt := buildContradictionPrompt(answer, fieldKey, summary)

	var result CheckResult
	if err := llm.GenerateJSON(ctx, t.provider, prompt, &result, llm.WithTemperature(0.2)); err != nil {
		t.logger.Printf("[MEMORY] Contradiction check failed, assuming none: %v", err)
		return CheckResult{}, m
	}

	if !result.HasContradiction || result.Details == nil {
		return CheckResult{HasContradiction: false}, m
	}

	next := AddContradiction(m, Contradiction{
		Field1:      result.Details.Field1,
		Field2:      fieldKey,
		Statement1:  result.Details.Statement1,
		Statement2:  result.Details.Statement2,
		Explanation: result.Details.Explanation,
	})
	return result, next
}

// Summary formats memory as a prompt context block: entity lines, field
// summaries, and the unresolved contradiction count.
func Summary(m Memory) string {
	parts := make([]string, 0, 8)

	if len(m.Entities.Audiences) > 0 {
		parts = append(parts, "აუდიტორია: "+strings.Join(m.Entities.Audiences, ", "))
	}
	if len(m.Entities.Competitors) > 0 {
		parts = append(parts, "კონკურენტები: "+strings.Join(m.Entities.Competitors, ", "))
	}
	if len(m.Entities.Features) > 0 {
		parts = append(parts, "ფუნქციები: "+strings.Join(m.Entities.Features, ", "))
	}
	if len(m.Entities.Numbers) > 0 {
		parts = append(parts, "რიცხვები: "+strings.Join(m.Entities.Numbers, ", "))
	}
	if len(m.Entities.Locations) > 0 {
		parts = append(parts, "ლოკაციები: "+strings.Join(m.Entities.Locations, ", "))
	}

	fieldKeys := make([]string, 0, len(m.FieldSummaries))
	for field := range m.FieldSummaries {
		fieldKeys = append(fieldKeys, field)
	}
	sort.Strings(fieldKeys)
	for _, field := range fieldKeys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, m.FieldSummaries[field]))
	}

	if n := UnresolvedCount(m); n > 0 {
		parts = append(parts, fmt.Sprintf("⚠️ გაურკვეველი წინააღმდეგობები: %d", n))
	}

	return strings.Join(parts, "\n")
}
