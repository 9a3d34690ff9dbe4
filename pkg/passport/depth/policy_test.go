package depth

import (
	"strings"
	"testing"

	"idea-passport-be/pkg/passport/state"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		fieldKey  string
		knowledge Knowledge
		previous  Quality
		want      int
	}{
		{
			// base 5, +2 beginner, +1 vague = 8, clamped to 7
			name:      "high complexity beginner vague clamps to max",
			fieldKey:  "revenue_model",
			knowledge: KnowledgeBeginner,
			previous:  QualityVague,
			want:      7,
		},
		{
			// base 2, -2 expert, -1 detailed = -1, clamped to 2
			name:      "low complexity expert detailed clamps to min",
			fieldKey:  "team",
			knowledge: KnowledgeExpert,
			previous:  QualityDetailed,
			want:      2,
		},
		{
			name:      "medium intermediate adequate stays at base",
			fieldKey:  "problem",
			knowledge: KnowledgeIntermediate,
			previous:  QualityAdequate,
			want:      4,
		},
		{
			name:      "first field has no quality adjustment",
			fieldKey:  "problem",
			knowledge: KnowledgeIntermediate,
			previous:  QualityFirstField,
			want:      4,
		},
		{
			name:      "unknown field key defaults to medium",
			fieldKey:  "interplanetary_logistics",
			knowledge: KnowledgeIntermediate,
			previous:  QualityAdequate,
			want:      4,
		},
		{
			name:      "unknown knowledge treated as intermediate",
			fieldKey:  "problem",
			knowledge: Knowledge("unknown"),
			previous:  QualityAdequate,
			want:      4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.fieldKey, tt.knowledge, tt.previous)
			if got.Count != tt.want {
				t.Errorf("Count = %d, want %d", got.Count, tt.want)
			}
			if got.Count < MinQuestions || got.Count > MaxQuestions {
				t.Errorf("Count %d outside [%d,%d]", got.Count, MinQuestions, MaxQuestions)
			}
		})
	}
}

func TestComputeBoundsForAllInputs(t *testing.T) {
	keys := []string{"team", "problem", "revenue_model", "nonexistent"}
	knowledges := []Knowledge{KnowledgeBeginner, KnowledgeIntermediate, KnowledgeExpert}
	qualities := []Quality{QualityFirstField, QualityVague, QualityAdequate, QualityDetailed}

	for _, k := range keys {
		for _, kn := range knowledges {
			for _, q := range qualities {
				got := Compute(k, kn, q)
				if got.Count < MinQuestions || got.Count > MaxQuestions {
					t.Errorf("Compute(%q,%q,%q) = %d outside [2,7]", k, kn, q, got.Count)
				}
			}
		}
	}
}

func TestAssessPreviousQuality(t *testing.T) {
	long := strings.Repeat("გ", 250)
	medium := strings.Repeat("a", 100)
	short := "კი"

	tests := []struct {
		name    string
		fields  []state.Field
		current int
		want    Quality
	}{
		{"first field", nil, 0, QualityFirstField},
		{
			"no answers is vague",
			[]state.Field{{Key: "problem", Answers: []string{}}},
			1,
			QualityVague,
		},
		{
			"long answers are detailed",
			[]state.Field{{Key: "problem", Answers: []string{long, long}}},
			1,
			QualityDetailed,
		},
		{
			"medium answers are adequate",
			[]state.Field{{Key: "problem", Answers: []string{medium}}},
			1,
			QualityAdequate,
		},
		{
			"short answers are vague",
			[]state.Field{{Key: "problem", Answers: []string{short, short}}},
			1,
			QualityVague,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessPreviousQuality(tt.fields, tt.current); got != tt.want {
				t.Errorf("AssessPreviousQuality = %q, want %q", got, tt.want)
			}
		})
	}
}
