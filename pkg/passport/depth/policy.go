// Package depth decides how many questions a passport field deserves.
// The recommendation is advisory: it is surfaced to the model as guidance,
// and the model's tool invocations remain the source of truth for when a
// topic ends.
package depth

import (
	"idea-passport-be/pkg/passport/state"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Quality classifies the previous field's answers.
type Quality string

const (
	QualityFirstField Quality = "first_field"
	QualityVague      Quality = "vague"
	QualityAdequate   Quality = "adequate"
	QualityDetailed   Quality = "detailed"
)

// Knowledge is the user's self-reported startup familiarity.
type Knowledge string

const (
	KnowledgeBeginner     Knowledge = "beginner"
	KnowledgeIntermediate Knowledge = "intermediate"
	KnowledgeExpert       Knowledge = "expert"
)

const (
	MinQuestions = 2
	MaxQuestions = 7
)

// fieldComplexity maps field keys to their declared complexity tier.
// Unknown keys default to medium.
var fieldComplexity = map[string]Complexity{
	// Low complexity (2-3 questions)
	"experience":   ComplexityLow,
	"team":         ComplexityLow,
	"mvp_features": ComplexityLow,

	// Medium complexity (3-5 questions)
	"problem":            ComplexityMedium,
	"solution":           ComplexityMedium,
	"target_users":       ComplexityMedium,
	"marketing_strategy": ComplexityMedium,
	"risks":              ComplexityMedium,
	"launch_plan":        ComplexityMedium,

	// High complexity (5-7 questions)
	"value_proposition":     ComplexityHigh,
	"uvp":                   ComplexityHigh,
	"revenue_model":         ComplexityHigh,
	"business_model":        ComplexityHigh,
	"competitive_advantage": ComplexityHigh,
	"competition":           ComplexityHigh,
	"financial_forecast":    ComplexityHigh,
	"metrics":               ComplexityHigh,
}

var baseCount = map[Complexity]int{
	ComplexityLow:    2,
	ComplexityMedium: 4,
	ComplexityHigh:   5,
}

// FieldComplexity returns the declared tier for a field key.
func FieldComplexity(fieldKey string) Complexity {
	if c, ok := fieldComplexity[fieldKey]; ok {
		return c
	}
	return ComplexityMedium
}

// Recommendation is the policy output for one field.
type Recommendation struct {
	Count      int
	Complexity Complexity
	Quality    Quality
}

// Compute returns the recommended question count for a field, clamped to
// [MinQuestions, MaxQuestions].
func Compute(fieldKey string, knowledge Knowledge, previous Quality) Recommendation {
	complexity := FieldComplexity(fieldKey)
	count := baseCount[complexity]

	switch knowledge {
	case KnowledgeExpert:
		count -= 2
	case KnowledgeBeginner:
		count += 2
	}

	switch previous {
	case QualityDetailed:
		count--
	case QualityVague:
		count++
	}

	if count < MinQuestions {
		count = MinQuestions
	}
	if count > MaxQuestions {
		count = MaxQuestions
	}

	return Recommendation{
		Count:      count,
		Complexity: complexity,
		Quality:    previous,
	}
}

// AssessPreviousQuality classifies the previous field's answers by average
// character length: >200 detailed, 50-200 adequate, below 50 (including no
// answers) vague. The first field of a session is its own class.
func AssessPreviousQuality(fields []state.Field, currentIndex int) Quality {
	if currentIndex == 0 || len(fields) == 0 {
		return QualityFirstField
	}
	if currentIndex-1 >= len(fields) {
		return QualityFirstField
	}

	previous := fields[currentIndex-1]

	answers := make([]string, 0, len(previous.Answers))
	for _, a := range previous.Answers {
		if a != "" {
			answers = append(answers, a)
		}
	}
	if len(answers) == 0 {
		return QualityVague
	}

	total := 0
	for _, a := range answers {
		total += len([]rune(a))
	}
	avg := total / len(answers)

	switch {
	case avg > 200:
		return QualityDetailed
	case avg > 50:
		return QualityAdequate
	default:
		return QualityVague
	}
}
