package services

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturelens/assessment-engine/internal/catalog"
	"github.com/venturelens/assessment-engine/internal/models"
)

const (
	// MinQuestions is the guaranteed floor for an assembled worksheet.
	MinQuestions = 4
	// MaxQuestions caps the randomized target count.
	MaxQuestions = 8
	// DefaultQuestionCount is used when no Rng is injected. Randomizing
	// the count is inherited behavior, not load-bearing for correctness,
	// so the deterministic default is the configuration knob.
	DefaultQuestionCount = 6
)

// defaultContextVariables fill template placeholders unless overridden
// by the caller's context. Unmatched placeholders are left literal.
var defaultContextVariables = map[string]string{
	"target_segment": "target customers",
	"product":        "your product",
	"company":        "your company",
	"market":         "your market",
}

var industryHelp = map[models.Industry]string{
	models.IndustryB2BSaaS:     "For B2B SaaS, anchor your answer in seats, contracts, and renewal behavior.",
	models.IndustryEnterprise:  "For enterprise sales, think in terms of buying committees and procurement cycles.",
	models.IndustryConsumer:    "For consumer products, think in terms of habits, retention, and word of mouth.",
	models.IndustryMarketplace: "For marketplaces, consider both sides: supply acquisition and demand liquidity.",
}

var stageGuidance = map[models.CompanyStage]string{
	models.StageIdea:      "At the idea stage, honest guesses are fine. Flag what you have not tested yet.",
	models.StagePrototype: "With a prototype in hand, lean on what early users actually did.",
	models.StagePreSeed:   "Pre-seed answers should separate validated learning from founder intuition.",
	models.StageSeed:      "At seed, ground your answers in repeatable patterns, not single anecdotes.",
	models.StageSeriesA:   "At Series A, your answers should reference real cohorts and pipeline data.",
	models.StageSeriesB:   "At Series B, tie your answers to operating metrics and segment-level data.",
	models.StageGrowth:    "At growth stage, quantify everything you can and note confidence levels.",
	models.StageMature:    "For a mature business, benchmark your answers against the category.",
}

// exampleAnswers provides 1-2 worked examples per question type; the
// second entry is shown only for advanced and expert worksheets.
var exampleAnswers = map[models.QuestionType][]string{
	models.Diagnostic: {
		"Example: \"Ops managers at 50-200 person logistics firms lose 6+ hours a week reconciling delivery exceptions across three tools.\"",
		"Example: \"We verified the pain with 14 interviews; 11 ranked it a top-three problem and 5 currently pay for a partial workaround.\"",
	},
	models.Exploratory: {
		"Example: \"Today they export to a spreadsheet and a senior dispatcher reconciles it manually every Friday.\"",
		"Example: \"Two customers built internal scripts; both abandoned them after the maintainer left.\"",
	},
	models.Validation: {
		"Example: \"Three pilot customers said they would renew at double the price; one put it in writing.\"",
		"Example: \"Churn interviews showed the losses came from onboarding gaps, not product fit.\"",
	},
	models.Quantification: {
		"Example: \"Roughly 12,000 firms fit the profile; at our $400/mo price point that is a $57M serviceable market.\"",
		"Example: \"CAC is $1,900 blended, payback at 11 months, and gross margin at 78% after support costs.\"",
	},
	models.Strategic: {
		"Example: \"We are betting on product-led growth because trials convert at 9% with zero sales touch.\"",
		"Example: \"Switching costs come from the integration depth: customers wire us into 4+ internal systems.\"",
	},
}

// cannedFollowUps are the stub follow-up prompts attached per type and
// consumed by the adaptation layer one at a time.
var cannedFollowUps = map[models.QuestionType][]string{
	models.Diagnostic:     {"What would have to be true for this problem to disappear on its own?", "Who inside the customer organization feels this pain most acutely?"},
	models.Exploratory:    {"What surprised you most when you dug into this?", "Which alternative came closest to solving it?"},
	models.Validation:     {"What is the strongest single piece of evidence you have?", "What would disprove your current belief here?"},
	models.Quantification: {"How confident are you in that number, and what drives the uncertainty?"},
	models.Strategic:      {"What is the main risk in that plan, and how would you see it coming?"},
}

var baseMinutesByType = map[models.QuestionType]int{
	models.Diagnostic:     3,
	models.Exploratory:    4,
	models.Validation:     3,
	models.Quantification: 5,
	models.Strategic:      6,
}

var inputTypeBonus = map[models.InputType]int{
	models.InputTextareaLarge: 3,
	models.InputTextarea:      2,
	models.InputSelect:        1,
	models.InputRadio:         1,
	models.InputNumber:        1,
	models.InputPercentage:    1,
	models.InputText:          0,
}

var difficultyMultiplier = map[models.DifficultyLevel]float64{
	models.DifficultyBeginner:     1.0,
	models.DifficultyIntermediate: 1.2,
	models.DifficultyAdvanced:     1.5,
	models.DifficultyExpert:       1.8,
}

// scoringThresholds are the per-difficulty pass marks carried on the
// worksheet for downstream consumers.
var scoringThresholds = map[models.DifficultyLevel]int{
	models.DifficultyBeginner:     40,
	models.DifficultyIntermediate: 55,
	models.DifficultyAdvanced:     70,
	models.DifficultyExpert:       80,
}

// WorksheetAssembler draws templates from the question bank per the
// strategy's mix and produces an ordered worksheet.
type WorksheetAssembler struct {
	bank         *catalog.QuestionBank
	logger       *slog.Logger
	rng          func() float64
	defaultCount int
	now          func() time.Time
	newID        func() string
}

type AssemblerOption func(*WorksheetAssembler)

// WithRng injects the random source used for the target question count.
// Without one the assembler uses the fixed DefaultQuestionCount.
func WithRng(rng func() float64) AssemblerOption {
	return func(a *WorksheetAssembler) { a.rng = rng }
}

// WithDefaultQuestionCount overrides the deterministic target count.
func WithDefaultQuestionCount(n int) AssemblerOption {
	return func(a *WorksheetAssembler) { a.defaultCount = n }
}

// WithClock injects the timestamp source, for tests.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *WorksheetAssembler) { a.now = now }
}

// WithIDGenerator injects the question id source, for tests.
func WithIDGenerator(newID func() string) AssemblerOption {
	return func(a *WorksheetAssembler) { a.newID = newID }
}

func NewWorksheetAssembler(bank *catalog.QuestionBank, logger *slog.Logger, opts ...AssemblerOption) *WorksheetAssembler {
	a := &WorksheetAssembler{
		bank:         bank,
		logger:       logger,
		defaultCount: DefaultQuestionCount,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds a worksheet for the strategy. Malformed strategies are
// not an error: missing fields fall back to an intermediate difficulty
// and a diagnostic-heavy mix. vars override the default placeholder
// variables; the reserved keys "industry" and "company_stage" select the
// enrichment tables.
func (a *WorksheetAssembler) Assemble(strategy models.Strategy, vars map[string]string) (*models.Worksheet, error) {
	strategy = normalizeStrategy(strategy)
	target := a.targetQuestionCount()

	questions := a.drawQuestions(strategy, target, vars)
	questions = a.padToMinimum(questions, vars)
	if len(questions) == 0 {
		return nil, ErrEmptyCatalog
	}

	ws := &models.Worksheet{
		ID:        a.newID(),
		Strategy:  strategy,
		Questions: questions,
		CreatedAt: a.now(),
	}

	if err := checkUniqueIDs(ws.Questions); err != nil {
		return nil, err
	}

	ws.AdaptiveFeatures = a.buildAdaptiveFeatures(ws)
	ws.Metadata = buildWorksheetMetadata(ws.Questions)

	a.logger.Info("worksheet assembled",
		"worksheet_id", ws.ID,
		"questions", len(ws.Questions),
		"difficulty", strategy.Difficulty,
		"estimated_minutes", ws.Metadata.EstimatedMinutes)

	return ws, nil
}

func normalizeStrategy(strategy models.Strategy) models.Strategy {
	if strategy.Difficulty.Rank() < 0 {
		strategy.Difficulty = models.DifficultyIntermediate
	}
	if len(strategy.QuestionMix) == 0 {
		strategy.QuestionMix = map[models.QuestionType]float64{
			models.Diagnostic:  0.6,
			models.Exploratory: 0.4,
		}
	}
	if strategy.FollowUpDepth <= 0 {
		strategy.FollowUpDepth = baseFollowUpDepth
	}
	if strategy.AdaptiveMode == "" {
		strategy.AdaptiveMode = models.ModeBalanced
	}
	return strategy
}

func (a *WorksheetAssembler) targetQuestionCount() int {
	if a.rng == nil {
		return clampQuestionCount(a.defaultCount)
	}
	n := int(math.Round(a.rng()*3 + 5))
	return clampQuestionCount(n)
}

func clampQuestionCount(n int) int {
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}

// drawQuestions pulls count-by-ratio templates per type. Types are
// visited in a fixed order so assembly is reproducible.
func (a *WorksheetAssembler) drawQuestions(strategy models.Strategy, target int, vars map[string]string) []models.Question {
	types := make([]models.QuestionType, 0, len(strategy.QuestionMix))
	for qt := range strategy.QuestionMix {
		types = append(types, qt)
	}
	sort.Slice(types, func(i, j int) bool { return typeOrder(types[i]) < typeOrder(types[j]) })

	var questions []models.Question
	for _, qt := range types {
		count := int(math.Round(float64(target) * strategy.QuestionMix[qt]))
		if count == 0 {
			continue
		}
		templates := a.bank.FindWithFallback(qt, strategy.Difficulty)
		if len(templates) == 0 {
			// Empty bank for this type contributes zero questions.
			a.logger.Warn("no templates for question type", "type", qt)
			continue
		}
		for i := 0; i < count; i++ {
			tmpl := templates[i%len(templates)]
			questions = append(questions, a.instantiate(tmpl, vars, true))
		}
	}
	return questions
}

func typeOrder(qt models.QuestionType) int {
	for i, t := range models.QuestionTypes {
		if t == qt {
			return i
		}
	}
	return len(models.QuestionTypes)
}

// padToMinimum guarantees at least MinQuestions by adding beginner
// diagnostic templates when the mix under-produces.
func (a *WorksheetAssembler) padToMinimum(questions []models.Question, vars map[string]string) []models.Question {
	if len(questions) >= MinQuestions {
		return questions
	}
	templates := a.bank.FindWithFallback(models.Diagnostic, models.DifficultyBeginner)
	if len(templates) == 0 {
		return questions
	}
	for i := 0; len(questions) < MinQuestions; i++ {
		questions = append(questions, a.instantiate(templates[i%len(templates)], vars, true))
	}
	return questions
}

// instantiate creates a worksheet Question from a catalog template,
// filling placeholders and attaching enrichment metadata.
func (a *WorksheetAssembler) instantiate(tmpl models.QuestionTemplate, vars map[string]string, required bool) models.Question {
	q := models.Question{
		ID:              a.newID(),
		Type:            tmpl.Type,
		Difficulty:      tmpl.Difficulty,
		Text:            fillPlaceholders(tmpl.Text, vars),
		Validation:      tmpl.Validation,
		ScoringCriteria: append([]string(nil), tmpl.ScoringCriteria...),
		Weight:          tmpl.Weight,
		Required:        required,
		HelpText:        tmpl.HelpText,
		Options:         append([]string(nil), tmpl.Options...),
		Metadata: models.QuestionMetadata{
			GeneratedAt:   a.now(),
			FocusArea:     tmpl.FocusArea,
			AdaptiveDepth: 0,
		},
	}
	if q.Weight <= 0 {
		q.Weight = 1
	}
	q.InputType = deriveInputType(tmpl)
	a.enrich(&q, vars)
	return q
}

// fillPlaceholders substitutes {token} slots from vars, falling back to
// the fixed defaults. Unmatched placeholders stay as literal text.
func fillPlaceholders(text string, vars map[string]string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			b.WriteString(text)
			break
		}
		closing := strings.IndexByte(text[open:], '}')
		if closing < 0 {
			b.WriteString(text)
			break
		}
		closing += open
		token := text[open+1 : closing]

		b.WriteString(text[:open])
		if value, ok := lookupVariable(token, vars); ok {
			b.WriteString(value)
		} else {
			b.WriteString(text[open : closing+1])
		}
		text = text[closing+1:]
	}
	return b.String()
}

func lookupVariable(token string, vars map[string]string) (string, bool) {
	if value, ok := vars[token]; ok {
		return value, true
	}
	value, ok := defaultContextVariables[token]
	return value, ok
}

// deriveInputType maps validation rules and options onto an input type,
// in fixed precedence order.
func deriveInputType(tmpl models.QuestionTemplate) models.InputType {
	switch {
	case tmpl.Validation.Pattern == "number":
		return models.InputNumber
	case tmpl.Validation.Pattern == "percentage":
		return models.InputPercentage
	case len(tmpl.Options) > 5:
		return models.InputSelect
	case len(tmpl.Options) > 0:
		return models.InputRadio
	case tmpl.Validation.MinLength > 200:
		return models.InputTextareaLarge
	case tmpl.Validation.MinLength > 100:
		return models.InputTextarea
	default:
		return models.InputText
	}
}

// enrich attaches the fixed lookup-table guidance. A missing table entry
// yields an empty string, never an error.
func (a *WorksheetAssembler) enrich(q *models.Question, vars map[string]string) {
	industry := models.Industry(vars["industry"])
	stage := models.CompanyStage(vars["company_stage"])

	q.IndustryHelp = industryHelp[industry]
	q.StageGuidance = stageGuidance[stage]

	if examples, ok := exampleAnswers[q.Type]; ok {
		n := 1
		if q.Difficulty.Rank() >= models.DifficultyAdvanced.Rank() && len(examples) > 1 {
			n = 2
		}
		q.Examples = append([]string(nil), examples[:n]...)
	}

	q.FollowUps = append([]string(nil), cannedFollowUps[q.Type]...)
}

func (a *WorksheetAssembler) buildAdaptiveFeatures(ws *models.Worksheet) models.AdaptiveFeatures {
	features := models.AdaptiveFeatures{
		BranchingLogic:    make(map[string]models.BranchRule, len(ws.Questions)),
		ScoringThresholds: make(map[models.DifficultyLevel]int, len(scoringThresholds)),
	}
	for d, threshold := range scoringThresholds {
		features.ScoringThresholds[d] = threshold
	}

	// Each question points at its sequential successor and carries the
	// template conditions matching its (type, difficulty) catalog entry.
	conditions := a.templateConditions()
	for i := range ws.Questions {
		q := &ws.Questions[i]
		rule := models.BranchRule{
			Conditions: conditions[conditionKey{q.Type, q.Difficulty}],
		}
		if i+1 < len(ws.Questions) {
			rule.NextQuestionID = ws.Questions[i+1].ID
		}
		features.BranchingLogic[q.ID] = rule
	}
	return features
}

type conditionKey struct {
	qt models.QuestionType
	d  models.DifficultyLevel
}

func (a *WorksheetAssembler) templateConditions() map[conditionKey][]models.FollowUpCondition {
	out := make(map[conditionKey][]models.FollowUpCondition)
	for _, tmpl := range a.bank.Templates() {
		if len(tmpl.FollowUpConditions) == 0 {
			continue
		}
		key := conditionKey{tmpl.Type, tmpl.Difficulty}
		if _, exists := out[key]; !exists {
			out[key] = append([]models.FollowUpCondition(nil), tmpl.FollowUpConditions...)
		}
	}
	return out
}

func buildWorksheetMetadata(questions []models.Question) models.WorksheetMetadata {
	meta := models.WorksheetMetadata{
		RequiredIDs: []string{},
		OptionalIDs: []string{},
	}
	minutes := 0.0
	for i := range questions {
		q := &questions[i]
		if q.Required {
			meta.RequiredIDs = append(meta.RequiredIDs, q.ID)
		} else {
			meta.OptionalIDs = append(meta.OptionalIDs, q.ID)
		}
		meta.TotalWeight += q.Weight
		minutes += estimatedMinutes(q)
	}
	meta.EstimatedMinutes = int(math.Round(minutes))
	return meta
}

func estimatedMinutes(q *models.Question) float64 {
	base := baseMinutesByType[q.Type]
	if base == 0 {
		base = baseMinutesByType[models.Diagnostic]
	}
	multiplier := difficultyMultiplier[q.Difficulty]
	if multiplier == 0 {
		multiplier = 1.0
	}
	return float64(base+inputTypeBonus[q.InputType]) * multiplier
}

func checkUniqueIDs(questions []models.Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		if _, dup := seen[questions[i].ID]; dup {
			return ErrDuplicateQuestionID
		}
		seen[questions[i].ID] = struct{}{}
	}
	return nil
}
