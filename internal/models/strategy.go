package models

type AdaptiveMode string

const (
	ModeSupportive  AdaptiveMode = "supportive"
	ModeBalanced    AdaptiveMode = "balanced"
	ModeChallenging AdaptiveMode = "challenging"
	ModeExpert      AdaptiveMode = "expert"
)

// Strategy is the question-mix plan computed once per session from
// maturity signals. It is immutable after worksheet assembly begins.
//
// QuestionMix ratios are weights over the selected type set; they need
// not sum to 1. AdaptiveMode is informational only.
type Strategy struct {
	Difficulty    DifficultyLevel          `json:"difficulty"`
	QuestionMix   map[QuestionType]float64 `json:"question_mix"`
	FocusAreas    []string                 `json:"focus_areas,omitempty"`
	AdaptiveMode  AdaptiveMode             `json:"adaptive_mode"`
	FollowUpDepth int                      `json:"follow_up_depth"`
	MaturityScore int                      `json:"maturity_score"`
}
