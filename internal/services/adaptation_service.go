package services

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturelens/assessment-engine/internal/models"
)

// Adaptation trigger thresholds.
const (
	lowScoreThreshold  = 30 // below: reduce difficulty of remaining questions
	highScoreThreshold = 90 // above: flag increased difficulty
	followUpScoreMin   = 60
	followUpScoreMax   = 80

	confusionMinLength = 20

	clarificationWeight    = 0.5
	clarificationMinLength = 30
	followUpWeight         = 0.8

	// Inserted questions always record depth 1, matching the observed
	// behavior of chained insertions in production.
	insertedQuestionDepth = 1

	reduceMinLengthFactor = 0.7
)

var confusionPhrases = []string{"i don't understand", "not sure"}

const genericClarificationPrompt = "Can you describe, in your own words, what part of the previous question was unclear?"

// AdaptationController decides whether a scored response should mutate
// the live worksheet: insert a clarification or follow-up, lower the
// difficulty of remaining questions, or flag a difficulty increase.
type AdaptationController struct {
	scorer *ResponseScorer
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type ControllerOption func(*AdaptationController)

// WithControllerClock injects the timestamp source, for tests.
func WithControllerClock(now func() time.Time) ControllerOption {
	return func(c *AdaptationController) { c.now = now }
}

// WithControllerIDGenerator injects the question id source, for tests.
func WithControllerIDGenerator(newID func() string) ControllerOption {
	return func(c *AdaptationController) { c.newID = newID }
}

func NewAdaptationController(scorer *ResponseScorer, logger *slog.Logger, opts ...ControllerOption) *AdaptationController {
	c := &AdaptationController{
		scorer: scorer,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessResponse records the answer, scores it, and applies any
// triggered adaptations to the worksheet in place. Triggers are
// independent: several may fire from one response.
//
// An unknown question id is not an error: the response is still
// recorded, but no scoring or adaptation happens and NextQuestion is
// nil. Calling before a worksheet exists is API misuse and fails.
func (c *AdaptationController) ProcessResponse(ws *models.Worksheet, history *models.ResponseHistory, questionID, answer string) (*models.ProcessResult, error) {
	if ws == nil {
		return nil, NewInvalidStateError("process_response", "worksheet has not been assembled")
	}

	history.Append(questionID, answer, c.now())

	question := ws.QuestionByID(questionID)
	if question == nil {
		c.logger.Warn("response for unknown question id", "question_id", questionID)
		return &models.ProcessResult{Adaptations: []models.Adaptation{}}, nil
	}

	score := c.scorer.Score(*question, answer)
	result := &models.ProcessResult{
		Score:       &score,
		Adaptations: []models.Adaptation{},
	}

	if isConfusedAnswer(answer) {
		inserted := c.addClarification(ws, questionID)
		result.Adaptations = append(result.Adaptations, models.Adaptation{
			Action:     models.ActionAddClarification,
			QuestionID: questionID,
			InsertedID: inserted,
		})
	}

	if score.Score < lowScoreThreshold {
		c.reduceDifficulty(ws, *history)
		result.Adaptations = append(result.Adaptations, models.Adaptation{
			Action:     models.ActionReduceDifficulty,
			QuestionID: questionID,
		})
	}

	if score.Score > highScoreThreshold {
		// Flag-only action: existing questions are not retroactively
		// altered, unlike the symmetric reduce path.
		ws.AdaptiveFeatures.DifficultyIncreased = true
		result.Adaptations = append(result.Adaptations, models.Adaptation{
			Action:     models.ActionIncreaseDifficulty,
			QuestionID: questionID,
		})
	}

	if score.Score >= followUpScoreMin && score.Score <= followUpScoreMax && len(question.FollowUps) > 0 {
		inserted := c.addFollowUp(ws, questionID)
		if inserted != "" {
			result.Adaptations = append(result.Adaptations, models.Adaptation{
				Action:     models.ActionAddFollowUp,
				QuestionID: questionID,
				InsertedID: inserted,
			})
		}
	}

	result.NextQuestion = c.NextQuestion(ws, questionID)

	c.logger.Info("response processed",
		"question_id", questionID,
		"score", score.Score,
		"adaptations", len(result.Adaptations))

	return result, nil
}

// NextQuestion returns the question immediately following currentID in
// the (possibly just-mutated) sequence, or nil when currentID is last
// or unknown.
func (c *AdaptationController) NextQuestion(ws *models.Worksheet, currentID string) *models.Question {
	idx := ws.IndexOf(currentID)
	if idx < 0 || idx+1 >= len(ws.Questions) {
		return nil
	}
	next := ws.Questions[idx+1]
	return &next
}

func isConfusedAnswer(answer string) bool {
	if len(answer) < confusionMinLength {
		return true
	}
	lowered := strings.ToLower(answer)
	for _, phrase := range confusionPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// addClarification inserts a beginner clarification question right after
// the parent. Returns the inserted id, or "" if the parent vanished.
func (c *AdaptationController) addClarification(ws *models.Worksheet, parentID string) string {
	parent := ws.QuestionByID(parentID)
	if parent == nil {
		return ""
	}

	text := parent.HelpText
	if text == "" {
		text = genericClarificationPrompt
	}

	clarification := models.Question{
		ID:              c.newID(),
		Type:            parent.Type,
		Difficulty:      models.DifficultyBeginner,
		Text:            text,
		Validation:      models.ValidationRules{MinLength: clarificationMinLength},
		ScoringCriteria: []string{"clarity"},
		Weight:          clarificationWeight,
		Required:        false,
		InputType:       models.InputText,
		Metadata: models.QuestionMetadata{
			GeneratedAt:   c.now(),
			FocusArea:     parent.Metadata.FocusArea,
			AdaptiveDepth: insertedQuestionDepth,
		},
	}

	c.insertAfter(ws, parentID, clarification)
	return clarification.ID
}

// addFollowUp pops the parent's first canned follow-up stub and inserts
// it as a question inheriting the parent's type and difficulty.
func (c *AdaptationController) addFollowUp(ws *models.Worksheet, parentID string) string {
	parent := ws.QuestionByID(parentID)
	if parent == nil || len(parent.FollowUps) == 0 {
		return ""
	}

	stub := parent.FollowUps[0]
	parent.FollowUps = parent.FollowUps[1:]

	followUp := models.Question{
		ID:              c.newID(),
		Type:            parent.Type,
		Difficulty:      parent.Difficulty,
		Text:            stub,
		Validation:      parent.Validation,
		ScoringCriteria: append([]string(nil), parent.ScoringCriteria...),
		Weight:          followUpWeight,
		Required:        false,
		InputType:       models.InputText,
		Metadata: models.QuestionMetadata{
			GeneratedAt:   c.now(),
			FocusArea:     parent.Metadata.FocusArea,
			AdaptiveDepth: insertedQuestionDepth,
		},
	}

	c.insertAfter(ws, parentID, followUp)
	return followUp.ID
}

// insertAfter splices the question into the sequence and keeps the
// branching pointers and worksheet metadata consistent.
func (c *AdaptationController) insertAfter(ws *models.Worksheet, parentID string, q models.Question) {
	if !ws.InsertAfter(parentID, q) {
		return
	}

	if ws.AdaptiveFeatures.BranchingLogic != nil {
		parentRule := ws.AdaptiveFeatures.BranchingLogic[parentID]
		ws.AdaptiveFeatures.BranchingLogic[q.ID] = models.BranchRule{
			NextQuestionID: parentRule.NextQuestionID,
		}
		parentRule.NextQuestionID = q.ID
		ws.AdaptiveFeatures.BranchingLogic[parentID] = parentRule
	}

	ws.Metadata.OptionalIDs = append(ws.Metadata.OptionalIDs, q.ID)
	ws.Metadata.TotalWeight += q.Weight
}

// reduceDifficulty steps every not-yet-answered question down one tier
// and relaxes its minimum length. Answered questions, tracked through
// the response history, are never touched.
func (c *AdaptationController) reduceDifficulty(ws *models.Worksheet, history models.ResponseHistory) {
	for i := range ws.Questions {
		q := &ws.Questions[i]
		if history.Answered(q.ID) {
			continue
		}
		q.Difficulty = q.Difficulty.StepDown()
		if q.Validation.MinLength > 0 {
			q.Validation.MinLength = int(math.Round(float64(q.Validation.MinLength) * reduceMinLengthFactor))
		}
	}
}
