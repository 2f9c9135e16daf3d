package models

type AdaptationAction string

const (
	ActionAddClarification   AdaptationAction = "add_clarification"
	ActionAddFollowUp        AdaptationAction = "add_followup"
	ActionReduceDifficulty   AdaptationAction = "reduce_difficulty"
	ActionIncreaseDifficulty AdaptationAction = "increase_difficulty"
)

// CriterionScore is one row of a score breakdown.
type CriterionScore struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
	Feedback  string `json:"feedback,omitempty"`
}

// ScoreResult is the outcome of evaluating a single free-text answer.
// Score is the unweighted average of the per-criterion scores.
type ScoreResult struct {
	Score     int              `json:"score"`
	Breakdown []CriterionScore `json:"breakdown"`
	Feedback  []string         `json:"feedback"`
}

// Adaptation describes one structural change applied to the live
// worksheet in reaction to a scored response.
type Adaptation struct {
	Action     AdaptationAction `json:"action"`
	QuestionID string           `json:"question_id,omitempty"` // trigger question
	InsertedID string           `json:"inserted_id,omitempty"` // for insert actions
}

// ProcessResult is returned for each submitted answer. Score is nil when
// the submitted question id is unknown to the worksheet.
type ProcessResult struct {
	Score        *ScoreResult `json:"score,omitempty"`
	Adaptations  []Adaptation `json:"adaptations"`
	NextQuestion *Question    `json:"next_question,omitempty"`
}
