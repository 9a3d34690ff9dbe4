// Package memorytrack accumulates best-effort session memory: entities the
// user has mentioned, per-field summaries, and detected contradictions
// between answers.
package memorytrack

import (
	"time"

	"github.com/google/uuid"
)

// MaxEntitiesPerCategory caps each entity bucket; overflow is dropped
// oldest-first during merge.
const MaxEntitiesPerCategory = 10

// MaxSummaryLength caps a per-field summary.
const MaxSummaryLength = 200

// Entities are categorized short strings extracted from answers.
type Entities struct {
	Audiences   []string `json:"audiences"`
	Competitors []string `json:"competitors"`
	Features    []string `json:"features"`
	Numbers     []string `json:"numbers"`
	Locations   []string `json:"locations"`
}

// Contradiction is one detected inconsistency between two statements made
// in different fields. Never deleted automatically; Resolved may be set once
// the user clarifies.
type Contradiction struct {
	Id          string    `json:"id"`
	Field1      string    `json:"field1"`
	Field2      string    `json:"field2"`
	Statement1  string    `json:"statement1"`
	Statement2  string    `json:"statement2"`
	Explanation string    `json:"explanation,omitempty"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Memory is the full auxiliary record attached to a session, persisted as a
// single structured blob.
type Memory struct {
	SessionId      uuid.UUID         `json:"session_id"`
	Entities       Entities          `json:"mentioned_entities"`
	FieldSummaries map[string]string `json:"field_summaries"`
	Contradictions []Contradiction   `json:"contradictions"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewMemory returns an empty memory for a session.
func NewMemory(sessionId uuid.UUID) Memory {
	return Memory{
		SessionId:      sessionId,
		Entities:       Entities{},
		FieldSummaries: map[string]string{},
		Contradictions: []Contradiction{},
		UpdatedAt:      time.Now(),
	}
}

// MergeEntities merges new entities into existing buckets: existing entries
// keep their position, new unseen entries append, each bucket capped.
func MergeEntities(existing, incoming Entities) Entities {
	return Entities{
		Audiences:   mergeBucket(existing.Audiences, incoming.Audiences),
		Competitors: mergeBucket(existing.Competitors, incoming.Competitors),
		Features:    mergeBucket(existing.Features, incoming.Features),
		Numbers:     mergeBucket(existing.Numbers, incoming.Numbers),
		Locations:   mergeBucket(existing.Locations, incoming.Locations),
	}
}

func mergeBucket(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, v := range existing {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}
	for _, v := range incoming {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}
	if len(merged) > MaxEntitiesPerCategory {
		merged = merged[:MaxEntitiesPerCategory]
	}
	return merged
}

// SetFieldSummary records a short summary for a completed field.
func SetFieldSummary(m Memory, fieldKey, summary string) Memory {
	runes := []rune(summary)
	if len(runes) > MaxSummaryLength {
		summary = string(runes[:MaxSummaryLength])
	}
	next := cloneMemory(m)
	next.FieldSummaries[fieldKey] = summary
	next.UpdatedAt = time.Now()
	return next
}

// AddContradiction appends a detected contradiction.
func AddContradiction(m Memory, c Contradiction) Memory {
	if c.Id == "" {
		c.Id = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	next := cloneMemory(m)
	next.Contradictions = append(next.Contradictions, c)
	next.UpdatedAt = time.Now()
	return next
}

// ResolveContradiction marks a contradiction resolved by id.
func ResolveContradiction(m Memory, id string) Memory {
	next := cloneMemory(m)
	for i := range next.Contradictions {
		if next.Contradictions[i].Id == id {
			next.Contradictions[i].Resolved = true
		}
	}
	next.UpdatedAt = time.Now()
	return next
}

// UnresolvedCount returns the number of open contradictions.
func UnresolvedCount(m Memory) int {
	n := 0
	for _, c := range m.Contradictions {
		if !c.Resolved {
			n++
		}
	}
	return n
}

func cloneMemory(m Memory) Memory {
	next := m
	next.FieldSummaries = make(map[string]string, len(m.FieldSummaries))
	for k, v := range m.FieldSummaries {
		next.FieldSummaries[k] = v
	}
	next.Contradictions = append([]Contradiction{}, m.Contradictions...)
	return next
}
