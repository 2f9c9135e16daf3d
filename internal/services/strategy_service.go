package services

import (
	"log/slog"

	"github.com/venturelens/assessment-engine/internal/models"
)

// Maturity tier thresholds. A maturity below the threshold selects the
// corresponding tier; anything at or above the last one is expert.
const (
	maturityBeginnerMax     = 30
	maturityIntermediateMax = 60
	maturityAdvancedMax     = 85

	defaultMaturity = 50

	weakAnswerThreshold  = 60
	baseFollowUpDepth    = 2
	raisedFollowUpDepth  = 3
	defaultAnswerMinimum = 50 // base length for the quality heuristic
)

// stageScores maps company stage to a fixed maturity contribution.
var stageScores = map[models.CompanyStage]int{
	models.StageIdea:      10,
	models.StagePrototype: 20,
	models.StagePreSeed:   30,
	models.StageSeed:      40,
	models.StageSeriesA:   50,
	models.StageSeriesB:   65,
	models.StageGrowth:    80,
	models.StageMature:    95,
}

var tierMixes = map[models.DifficultyLevel]map[models.QuestionType]float64{
	models.DifficultyBeginner: {
		models.Diagnostic:  0.5,
		models.Exploratory: 0.3,
		models.Validation:  0.2,
	},
	models.DifficultyIntermediate: {
		models.Diagnostic:     0.3,
		models.Exploratory:    0.3,
		models.Validation:     0.2,
		models.Quantification: 0.2,
	},
	models.DifficultyAdvanced: {
		models.Diagnostic:     0.2,
		models.Exploratory:    0.2,
		models.Validation:     0.2,
		models.Quantification: 0.2,
		models.Strategic:      0.2,
	},
	models.DifficultyExpert: {
		models.Exploratory:    0.1,
		models.Validation:     0.2,
		models.Quantification: 0.3,
		models.Strategic:      0.4,
	},
}

var tierModes = map[models.DifficultyLevel]models.AdaptiveMode{
	models.DifficultyBeginner:     models.ModeSupportive,
	models.DifficultyIntermediate: models.ModeBalanced,
	models.DifficultyAdvanced:     models.ModeChallenging,
	models.DifficultyExpert:       models.ModeExpert,
}

type industryAdjustment struct {
	focusAreas   []string
	mixOverrides map[models.QuestionType]float64
}

var industryAdjustments = map[models.Industry]industryAdjustment{
	models.IndustryB2BSaaS: {
		focusAreas:   []string{"pricing", "metrics"},
		mixOverrides: map[models.QuestionType]float64{models.Quantification: 0.3},
	},
	models.IndustryEnterprise: {
		focusAreas:   []string{"go-to-market"},
		mixOverrides: map[models.QuestionType]float64{models.Strategic: 0.3},
	},
	models.IndustryConsumer: {
		focusAreas:   []string{"customer-discovery"},
		mixOverrides: map[models.QuestionType]float64{models.Exploratory: 0.4},
	},
	models.IndustryMarketplace: {
		focusAreas:   []string{"metrics", "competition"},
		mixOverrides: map[models.QuestionType]float64{models.Validation: 0.3},
	},
}

// StrategyPlanner derives a question-mix strategy from coarse maturity
// signals. It is a pure function of its inputs plus fixed tables; the
// logger is used only at the boundary.
type StrategyPlanner struct {
	logger *slog.Logger
}

func NewStrategyPlanner(logger *slog.Logger) *StrategyPlanner {
	return &StrategyPlanner{logger: logger}
}

// PlanStrategy computes the session strategy. It has no error
// conditions; missing signals fall back to an intermediate default.
func (p *StrategyPlanner) PlanStrategy(assessCtx models.AssessmentContext, history []models.HistoryEntry) models.Strategy {
	maturity := p.maturityScore(assessCtx, history)
	tier := tierForMaturity(maturity)

	mix := make(map[models.QuestionType]float64, len(tierMixes[tier]))
	for qt, ratio := range tierMixes[tier] {
		mix[qt] = ratio
	}

	strategy := models.Strategy{
		Difficulty:    tier,
		QuestionMix:   mix,
		AdaptiveMode:  tierModes[tier],
		FollowUpDepth: baseFollowUpDepth,
		MaturityScore: maturity,
	}

	// Weak prior answers bias the focus areas and deepen follow-ups.
	for _, entry := range history {
		if answerQuality(entry.Response, defaultAnswerMinimum) >= weakAnswerThreshold {
			continue
		}
		strategy.FollowUpDepth = raisedFollowUpDepth
		if entry.FocusArea != "" {
			strategy.FocusAreas = appendUnique(strategy.FocusAreas, entry.FocusArea)
		}
	}

	if adj, ok := industryAdjustments[assessCtx.Industry]; ok {
		for _, area := range adj.focusAreas {
			strategy.FocusAreas = appendUnique(strategy.FocusAreas, area)
		}
		for qt, ratio := range adj.mixOverrides {
			strategy.QuestionMix[qt] = ratio
		}
	}

	p.logger.Info("strategy planned",
		"maturity", maturity,
		"tier", tier,
		"mode", strategy.AdaptiveMode,
		"focus_areas", strategy.FocusAreas,
		"follow_up_depth", strategy.FollowUpDepth)

	return strategy
}

// maturityScore averages up to four independent signals, each optional.
// With zero signals present the maturity defaults to 50 (intermediate).
func (p *StrategyPlanner) maturityScore(assessCtx models.AssessmentContext, history []models.HistoryEntry) int {
	var signals []int

	if score, ok := stageScores[assessCtx.CompanyStage]; ok {
		signals = append(signals, score)
	}

	if quality, ok := historyQuality(history); ok {
		signals = append(signals, quality)
	}

	if assessCtx.YearsExperience != nil {
		years := *assessCtx.YearsExperience
		if years < 0 {
			years = 0
		}
		scaled := years * 10
		if scaled > 100 {
			scaled = 100
		}
		signals = append(signals, scaled)
	}

	if len(assessCtx.PriorScores) > 0 {
		sum := 0
		for _, s := range assessCtx.PriorScores {
			sum += s
		}
		signals = append(signals, sum/len(assessCtx.PriorScores))
	}

	if len(signals) == 0 {
		return defaultMaturity
	}

	total := 0
	for _, s := range signals {
		total += s
	}
	return total / len(signals)
}

// historyQuality averages the length heuristic over historical answers.
func historyQuality(history []models.HistoryEntry) (int, bool) {
	if len(history) == 0 {
		return 0, false
	}
	total := 0
	for _, entry := range history {
		total += answerQuality(entry.Response, defaultAnswerMinimum)
	}
	return total / len(history), true
}

// answerQuality buckets an answer by length against a minimum, the same
// thresholds the scorer uses for its length-based criteria.
func answerQuality(answer string, minLength int) int {
	return lengthBucketScore(len(answer), minLength)
}

func tierForMaturity(maturity int) models.DifficultyLevel {
	switch {
	case maturity < maturityBeginnerMax:
		return models.DifficultyBeginner
	case maturity < maturityIntermediateMax:
		return models.DifficultyIntermediate
	case maturity < maturityAdvancedMax:
		return models.DifficultyAdvanced
	default:
		return models.DifficultyExpert
	}
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
