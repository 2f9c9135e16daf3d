package models

import (
	"time"
)

type QuestionType string

const (
	Diagnostic     QuestionType = "diagnostic"
	Exploratory    QuestionType = "exploratory"
	Validation     QuestionType = "validation"
	Quantification QuestionType = "quantification"
	Strategic      QuestionType = "strategic"
)

// QuestionTypes lists all valid question types in catalog order.
var QuestionTypes = []QuestionType{
	Diagnostic,
	Exploratory,
	Validation,
	Quantification,
	Strategic,
}

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
	DifficultyExpert       DifficultyLevel = "expert"
)

// DifficultyLevels lists difficulty tiers from lowest to highest.
var DifficultyLevels = []DifficultyLevel{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// Rank returns the position of the difficulty in the tier ladder,
// or -1 for an unknown value.
func (d DifficultyLevel) Rank() int {
	for i, level := range DifficultyLevels {
		if level == d {
			return i
		}
	}
	return -1
}

// StepDown returns the next lower tier, flooring at beginner.
func (d DifficultyLevel) StepDown() DifficultyLevel {
	rank := d.Rank()
	if rank <= 0 {
		return DifficultyBeginner
	}
	return DifficultyLevels[rank-1]
}

// StepUp returns the next higher tier, capped at expert.
func (d DifficultyLevel) StepUp() DifficultyLevel {
	rank := d.Rank()
	if rank < 0 || rank >= len(DifficultyLevels)-1 {
		return DifficultyExpert
	}
	return DifficultyLevels[rank+1]
}

type InputType string

const (
	InputNumber        InputType = "number"
	InputPercentage    InputType = "percentage"
	InputSelect        InputType = "select"
	InputRadio         InputType = "radio"
	InputTextareaLarge InputType = "textarea_large"
	InputTextarea      InputType = "textarea"
	InputText          InputType = "text"
)

// ValidationRules constrains the expected shape of an answer.
// A zero MinLength means "use the scorer default".
type ValidationRules struct {
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// FollowUpCondition pairs a branching condition with the adaptation
// action it should trigger.
type FollowUpCondition struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

// QuestionTemplate is an immutable catalog entry. Templates are defined
// at process start and never mutated; Questions are instantiated copies.
type QuestionTemplate struct {
	Type               QuestionType        `json:"type" validate:"required,question_type"`
	Difficulty         DifficultyLevel     `json:"difficulty" validate:"required,difficulty_level"`
	Text               string              `json:"text" validate:"required"`
	Validation         ValidationRules     `json:"validation"`
	ScoringCriteria    []string            `json:"scoring_criteria"`
	Weight             float64             `json:"weight"`
	HelpText           string              `json:"help_text,omitempty"`
	Options            []string            `json:"options,omitempty"`
	FollowUpConditions []FollowUpCondition `json:"follow_up_conditions,omitempty"`
	FocusArea          string              `json:"focus_area,omitempty"`
}

// QuestionMetadata records how and why a question instance was generated.
type QuestionMetadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	FocusArea     string    `json:"focus_area,omitempty"`
	AdaptiveDepth int       `json:"adaptive_depth"` // 0 for root questions
}

// Question is a worksheet instance generated from a QuestionTemplate.
// It is owned exclusively by the Worksheet that contains it.
type Question struct {
	ID              string           `json:"id"`
	Type            QuestionType     `json:"type"`
	Difficulty      DifficultyLevel  `json:"difficulty"`
	Text            string           `json:"text"`
	Validation      ValidationRules  `json:"validation"`
	ScoringCriteria []string         `json:"scoring_criteria"`
	Weight          float64          `json:"weight"`
	Required        bool             `json:"required"`
	HelpText        string           `json:"help_text,omitempty"`
	Options         []string         `json:"options,omitempty"`
	InputType       InputType        `json:"input_type"`
	IndustryHelp    string           `json:"industry_help,omitempty"`
	StageGuidance   string           `json:"stage_guidance,omitempty"`
	Examples        []string         `json:"examples,omitempty"`
	FollowUps       []string         `json:"follow_ups,omitempty"`
	Metadata        QuestionMetadata `json:"metadata"`
}

// BranchRule points a question at its sequential successor and carries
// the template's conditional follow-up actions.
type BranchRule struct {
	NextQuestionID string              `json:"next_question_id,omitempty"`
	Conditions     []FollowUpCondition `json:"conditions,omitempty"`
}

type AdaptiveFeatures struct {
	BranchingLogic      map[string]BranchRule   `json:"branching_logic"`
	ScoringThresholds   map[DifficultyLevel]int `json:"scoring_thresholds"`
	DifficultyIncreased bool                    `json:"difficulty_increased"`
}

type WorksheetMetadata struct {
	EstimatedMinutes int      `json:"estimated_minutes"`
	RequiredIDs      []string `json:"required_ids"`
	OptionalIDs      []string `json:"optional_ids"`
	TotalWeight      float64  `json:"total_weight"`
}

// Worksheet is an ordered sequence of questions assembled for one
// assessment session. It is append-only: adaptation may insert questions
// but never removes them.
type Worksheet struct {
	ID               string            `json:"id"`
	Strategy         Strategy          `json:"strategy"`
	Questions        []Question        `json:"questions"`
	AdaptiveFeatures AdaptiveFeatures  `json:"adaptive_features"`
	Metadata         WorksheetMetadata `json:"metadata"`
	CreatedAt        time.Time         `json:"created_at"`
}

// IndexOf returns the position of the question with the given id,
// or -1 if it is not part of the worksheet.
func (w *Worksheet) IndexOf(questionID string) int {
	for i := range w.Questions {
		if w.Questions[i].ID == questionID {
			return i
		}
	}
	return -1
}

// QuestionByID returns a pointer into the worksheet's question slice,
// or nil when the id is unknown.
func (w *Worksheet) QuestionByID(questionID string) *Question {
	idx := w.IndexOf(questionID)
	if idx < 0 {
		return nil
	}
	return &w.Questions[idx]
}

// InsertAfter places q immediately after the question with the given id,
// shifting subsequent questions. It reports whether the anchor was found.
func (w *Worksheet) InsertAfter(questionID string, q Question) bool {
	idx := w.IndexOf(questionID)
	if idx < 0 {
		return false
	}
	w.Questions = append(w.Questions, Question{})
	copy(w.Questions[idx+2:], w.Questions[idx+1:])
	w.Questions[idx+1] = q
	return true
}
