package models

import "time"

type CompanyStage string

const (
	StageIdea      CompanyStage = "idea"
	StagePrototype CompanyStage = "prototype"
	StagePreSeed   CompanyStage = "pre-seed"
	StageSeed      CompanyStage = "seed"
	StageSeriesA   CompanyStage = "series-a"
	StageSeriesB   CompanyStage = "series-b"
	StageGrowth    CompanyStage = "growth"
	StageMature    CompanyStage = "mature"
)

type Industry string

const (
	IndustryB2BSaaS     Industry = "b2b-saas"
	IndustryEnterprise  Industry = "enterprise"
	IndustryConsumer    Industry = "consumer"
	IndustryMarketplace Industry = "marketplace"
)

// AssessmentContext carries the sparse signals the planner derives a
// maturity score from, plus caller-supplied template variables. Every
// field is optional.
type AssessmentContext struct {
	CompanyStage    CompanyStage      `json:"company_stage,omitempty" validate:"omitempty,company_stage"`
	Industry        Industry          `json:"industry,omitempty" validate:"omitempty,industry"`
	YearsExperience *int              `json:"years_experience,omitempty" validate:"omitempty,min=0,max=60"`
	PriorScores     []int             `json:"prior_scores,omitempty" validate:"omitempty,dive,min=0,max=100"`
	Variables       map[string]string `json:"variables,omitempty"`
}

// HistoryEntry is one (question, response) pair from the current or a
// previous session. FocusArea labels weak topics for strategy planning;
// Score is an externally supplied prior score when present.
type HistoryEntry struct {
	QuestionID string    `json:"question_id"`
	Response   string    `json:"response"`
	FocusArea  string    `json:"focus_area,omitempty"`
	Score      *int      `json:"score,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
}

// ResponseHistory is the in-memory answer log for a session. It is used
// to detect already-answered questions when adapting difficulty.
type ResponseHistory []HistoryEntry

// Append records a response. Duplicate submissions for the same question
// simply append again; last-write associations are the caller's concern.
func (h *ResponseHistory) Append(questionID, response string, at time.Time) {
	*h = append(*h, HistoryEntry{
		QuestionID: questionID,
		Response:   response,
		AnsweredAt: at,
	})
}

// Answered reports whether the question id appears in the history.
func (h ResponseHistory) Answered(questionID string) bool {
	for i := range h {
		if h[i].QuestionID == questionID {
			return true
		}
	}
	return false
}
