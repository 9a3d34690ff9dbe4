// Package tools declares the operations the language model may invoke
// during an idea-passport conversation, and decodes their arguments.
package tools

import (
	"idea-passport-be/pkg/llm"
)

// Tool names understood by the executor.
const (
	ToolStartTopic    = "start_topic"
	ToolAskFollowup   = "ask_followup"
	ToolCompleteTopic = "complete_topic"
	ToolEndSession    = "end_session"
)

// FieldKeys is the enumerated set of passport field keys the model may open.
var FieldKeys = []string{
	"idea",
	"problem",
	"solution",
	"target_users",
	"value_proposition",
	"competition",
	"revenue_model",
	"mvp_features",
	"risks",
	"metrics",
	"experience",
	"market_size",
	"pricing",
	"distribution",
	"team",
	"funding",
	"timeline",
	"technology",
	"legal",
	"partnerships",
	"growth",
}

var nextTopicSchema = &llm.Schema{
	Type:        "object",
	Description: "REQUIRED (except before end_session): Next topic to start. This creates the next field in the passport.",
	Properties: map[string]*llm.Schema{
		"field_key": {
			Type:        "string",
			Description: "Field key for next topic",
		},
		"field_name": {
			Type:        "string",
			Description: "Field name in Georgian",
		},
		"field_icon": {
			Type:        "string",
			Description: "Emoji icon",
		},
		"question": {
			Type:        "string",
			Description: "First question for next topic",
		},
	},
}

// Definitions is the static tool schema sent to the model on every turn.
var Definitions = []llm.Tool{
	{
		Name: ToolStartTopic,
		Description: "Start exploring a new topic/field in the business idea. " +
			"Creates a new field in the passport and asks the first question about it. " +
			"Use this when moving to a new aspect of the business idea.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"field_key": {
					Type:        "string",
					Description: "Unique identifier for the field",
					Enum:        FieldKeys,
				},
				"field_name": {
					Type:        "string",
					Description: `Display name in Georgian (e.g., "პრობლემა", "გადაწყვეტა")`,
				},
				"field_icon": {
					Type:        "string",
					Description: "Emoji icon for the field",
				},
				"question": {
					Type: "string",
					Description: "First question to ask about this topic in Georgian. " +
						"Should be friendly and conversational.",
				},
			},
			Required: []string{"field_key", "field_name", "field_icon", "question"},
		},
	},
	{
		Name: ToolAskFollowup,
		Description: "Ask a follow-up question about the current active field. " +
			"Use this to dig deeper, clarify vague answers, or gather more details about the current topic.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"question": {
					Type: "string",
					Description: "Follow-up question in Georgian. " +
						"Should reference previous answer when relevant.",
				},
				"reason": {
					Type:        "string",
					Description: "Brief internal note on why this follow-up is needed (for debugging)",
				},
			},
			Required: []string{"question"},
		},
	},
	{
		Name: ToolCompleteTopic,
		Description: "Mark the current field as complete. " +
			"IMPORTANT: Always include next_topic to create the next field (unless ending session).",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"content": {
					Type: "string",
					Description: "Content summary in Georgian of what was learned about this topic " +
						"to save in the passport field",
				},
				"next_topic": nextTopicSchema,
			},
			Required: []string{"content"},
		},
	},
	{
		Name: ToolEndSession,
		Description: "Complete the entire conversation session when all critical topics have been explored. " +
			"Provides final summary and next steps.",
		Parameters: &llm.Schema{
			Type: "object",
			Properties: map[string]*llm.Schema{
				"message": {
					Type:        "string",
					Description: "Final congratulatory message to the user in Georgian, summarizing the session",
				},
				"assessment": {
					Type:        "string",
					Description: "Brief assessment of the idea and recommended next steps (in Georgian)",
				},
				"score": {
					Type:        "number",
					Description: "Score from 1-10 indicating idea readiness",
				},
			},
			Required: []string{"message", "assessment", "score"},
		},
	},
}
