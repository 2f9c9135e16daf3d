package services

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/venturelens/assessment-engine/internal/models"
)

// Score bands for qualitative feedback.
const (
	bandExcellent = 80
	bandGood      = 60
	bandAdequate  = 40

	// Flat score for criteria with no registered evaluator. Intentionally
	// permissive: an unknown criterion is not an error.
	standardEvaluationScore = 50

	keywordMatchPoints = 25
	criterionWeakScore = 50
)

// lengthBucketScore maps answer length to the fixed scoring buckets
// against a minimum length. Bucketed on purpose, not interpolated.
func lengthBucketScore(length, minLength int) int {
	if minLength <= 0 {
		minLength = defaultAnswerMinimum
	}
	switch {
	case length >= 2*minLength:
		return 90
	case length*2 >= 3*minLength: // >= 1.5x
		return 75
	case length >= minLength:
		return 60
	default:
		return 30
	}
}

// keywordLists holds the fixed keyword sets for keyword-based criteria.
var keywordLists = map[string][]string{
	"evidence":       {"said", "told", "mentioned", "quote", "feedback"},
	"time_impact":    {"hours", "days", "weeks", "minutes", "time"},
	"frequency":      {"always", "often", "daily", "weekly", "every"},
	"quantification": {"%", "percent", "revenue", "cost", "$"},
	"customer_focus": {"customer", "user", "client", "buyer", "prospect"},
}

// CriterionEvaluator scores a single criterion for an answer, returning
// a 0-100 score and a short feedback fragment for the breakdown.
type CriterionEvaluator func(q models.Question, answer string) (int, string)

// ResponseScorer evaluates free-text answers against a question's
// declared criteria. Evaluators are registered at construction; new
// criteria are added by registration, not by editing a dispatch switch.
type ResponseScorer struct {
	evaluators map[string]CriterionEvaluator
	logger     *slog.Logger
}

func NewResponseScorer(logger *slog.Logger) *ResponseScorer {
	s := &ResponseScorer{
		evaluators: make(map[string]CriterionEvaluator),
		logger:     logger,
	}

	// Length-based criteria.
	s.Register("clarity", lengthEvaluator)
	s.Register("specificity", lengthEvaluator)

	// Keyword-based criteria.
	for name, keywords := range keywordLists {
		s.Register(name, keywordEvaluator(keywords))
	}

	return s
}

// Register adds or replaces the evaluator for a criterion name.
func (s *ResponseScorer) Register(criterion string, eval CriterionEvaluator) {
	s.evaluators[criterion] = eval
}

// Score evaluates the answer against every declared criterion and
// averages the results without weighting. It is a pure function: the
// same (question, answer) pair always yields the same result.
func (s *ResponseScorer) Score(q models.Question, answer string) models.ScoreResult {
	criteria := q.ScoringCriteria
	if len(criteria) == 0 {
		criteria = []string{"clarity"}
	}

	result := models.ScoreResult{
		Breakdown: make([]models.CriterionScore, 0, len(criteria)),
	}

	total := 0
	for _, criterion := range criteria {
		score, note := s.evaluateCriterion(criterion, q, answer)
		total += score
		result.Breakdown = append(result.Breakdown, models.CriterionScore{
			Criterion: criterion,
			Score:     score,
			Feedback:  note,
		})
	}

	result.Score = int(math.Round(float64(total) / float64(len(criteria))))
	result.Feedback = append(result.Feedback, bandFeedback(result.Score))
	for _, cs := range result.Breakdown {
		if cs.Score < criterionWeakScore {
			result.Feedback = append(result.Feedback,
				fmt.Sprintf("Consider strengthening %s in your answer.", cs.Criterion))
		}
	}

	return result
}

func (s *ResponseScorer) evaluateCriterion(criterion string, q models.Question, answer string) (int, string) {
	if eval, ok := s.evaluators[criterion]; ok {
		return eval(q, answer)
	}
	return standardEvaluationScore, "standard evaluation"
}

func lengthEvaluator(q models.Question, answer string) (int, string) {
	minLength := q.Validation.MinLength
	if minLength <= 0 {
		minLength = defaultAnswerMinimum
	}
	score := lengthBucketScore(len(answer), minLength)
	if score < 60 {
		return score, fmt.Sprintf("needs more detail (minimum %d characters)", minLength)
	}
	return score, "meets length expectations"
}

func keywordEvaluator(keywords []string) CriterionEvaluator {
	return func(_ models.Question, answer string) (int, string) {
		lowered := strings.ToLower(answer)
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				matches++
			}
		}
		score := matches * keywordMatchPoints
		if score > 100 {
			score = 100
		}
		if matches == 0 {
			return 0, "no supporting detail found"
		}
		return score, fmt.Sprintf("%d supporting terms found", matches)
	}
}

func bandFeedback(score int) string {
	switch {
	case score >= bandExcellent:
		return "Excellent response with strong detail and evidence."
	case score >= bandGood:
		return "Good response that covers the essentials."
	case score >= bandAdequate:
		return "Adequate response, but it could use more depth."
	default:
		return "This response needs significantly more detail."
	}
}
