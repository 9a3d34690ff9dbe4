package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session lifecycle: intro -> in-progress -> completed. A session enters
// in-progress once the founder profile is captured or the first chat turn
// lands, whichever comes first.
const (
	SessionStatusIntro      = "intro"
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
)

// Experience is the founder profile captured before or during a session.
// StartupKnowledge drives how many questions a topic gets.
type Experience struct {
	Role               string `json:"role"`
	BusinessExperience string `json:"business_experience"`
	StartupKnowledge   string `json:"startup_knowledge"`
	IdeaStage          string `json:"idea_stage"`
}

type Session struct {
	Id          uuid.UUID
	Status      string
	IdeaText    string
	Experience  *Experience
	Score       *float64
	Assessment  string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time
}
