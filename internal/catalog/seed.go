package catalog

import (
	"github.com/venturelens/assessment-engine/internal/models"
)

// DefaultBank returns the built-in business-assessment catalog. The
// templates are the static worksheet bank; placeholder tokens are filled
// at assembly time from context variables.
func DefaultBank() *QuestionBank {
	return NewQuestionBank(defaultTemplates)
}

var defaultTemplates = []models.QuestionTemplate{
	// ----- diagnostic -----
	{
		Type:            models.Diagnostic,
		Difficulty:      models.DifficultyBeginner,
		Text:            "What problem does your product solve for {target_segment}?",
		Validation:      models.ValidationRules{MinLength: 50},
		ScoringCriteria: []string{"clarity", "specificity"},
		HelpText:        "Describe the problem in plain language, as your customers would describe it.",
		FocusArea:       "problem-validation",
	},
	{
		Type:            models.Diagnostic,
		Difficulty:      models.DifficultyBeginner,
		Text:            "Who is {target_segment} for {product}, and how do you reach them today?",
		Validation:      models.ValidationRules{MinLength: 50},
		ScoringCriteria: []string{"clarity", "customer_focus"},
		HelpText:        "Name the specific group of people you are building for.",
		FocusArea:       "customer-discovery",
	},
	{
		Type:            models.Diagnostic,
		Difficulty:      models.DifficultyIntermediate,
		Text:            "Which customer conversations shaped your current understanding of the problem?",
		Validation:      models.ValidationRules{MinLength: 100},
		ScoringCriteria: []string{"evidence", "specificity"},
		HelpText:        "Quote or paraphrase what customers actually told you.",
		FocusArea:       "customer-discovery",
		FollowUpConditions: []models.FollowUpCondition{
			{Condition: "score < 50", Action: "add_clarification"},
		},
	},
	{
		Type:            models.Diagnostic,
		Difficulty:      models.DifficultyAdvanced,
		Text:            "Where does the problem cost {target_segment} the most, in time or money?",
		Validation:      models.ValidationRules{MinLength: 120},
		ScoringCriteria: []string{"time_impact", "quantification"},
		FocusArea:       "problem-validation",
	},

	// ----- exploratory -----
	{
		Type:            models.Exploratory,
		Difficulty:      models.DifficultyBeginner,
		Text:            "How do people in {target_segment} handle this problem without {product}?",
		Validation:      models.ValidationRules{MinLength: 50},
		ScoringCriteria: []string{"clarity", "evidence"},
		HelpText:        "Think of workarounds, spreadsheets, or competing tools.",
		FocusArea:       "competition",
	},
	{
		Type:            models.Exploratory,
		Difficulty:      models.DifficultyIntermediate,
		Text:            "How often does the problem occur for a typical customer, and what triggers it?",
		Validation:      models.ValidationRules{MinLength: 75},
		ScoringCriteria: []string{"frequency", "specificity"},
		FocusArea:       "problem-validation",
	},
	{
		Type:            models.Exploratory,
		Difficulty:      models.DifficultyAdvanced,
		Text:            "Which adjacent problems have customers asked you to solve, and why have you said no?",
		Validation:      models.ValidationRules{MinLength: 120},
		ScoringCriteria: []string{"clarity", "evidence"},
		FocusArea:       "go-to-market",
	},

	// ----- validation -----
	{
		Type:            models.Validation,
		Difficulty:      models.DifficultyBeginner,
		Text:            "What evidence do you have that {target_segment} wants this solved?",
		Validation:      models.ValidationRules{MinLength: 50},
		ScoringCriteria: []string{"evidence", "specificity"},
		HelpText:        "Interviews, waitlists, pre-orders, usage data all count.",
		FocusArea:       "problem-validation",
		FollowUpConditions: []models.FollowUpCondition{
			{Condition: "score >= 60 && score <= 80", Action: "add_followup"},
		},
	},
	{
		Type:            models.Validation,
		Difficulty:      models.DifficultyIntermediate,
		Text:            "Describe the last time a customer churned or walked away. What did you learn?",
		Validation:      models.ValidationRules{MinLength: 100},
		ScoringCriteria: []string{"evidence", "clarity"},
		FocusArea:       "customer-discovery",
	},
	{
		Type:            models.Validation,
		Difficulty:      models.DifficultyExpert,
		Text:            "Which of your core assumptions about {target_segment} has survived the most rigorous test so far?",
		Validation:      models.ValidationRules{MinLength: 150},
		ScoringCriteria: []string{"evidence", "specificity"},
		FocusArea:       "problem-validation",
	},

	// ----- quantification -----
	{
		Type:            models.Quantification,
		Difficulty:      models.DifficultyBeginner,
		Text:            "How many potential customers are in {target_segment}?",
		Validation:      models.ValidationRules{MinLength: 30, Pattern: "number"},
		ScoringCriteria: []string{"quantification"},
		HelpText:        "A rough estimate with your reasoning is fine.",
		FocusArea:       "metrics",
	},
	{
		Type:            models.Quantification,
		Difficulty:      models.DifficultyIntermediate,
		Text:            "What share of {target_segment} could you realistically reach in the next year?",
		Validation:      models.ValidationRules{MinLength: 30, Pattern: "percentage"},
		ScoringCriteria: []string{"quantification", "clarity"},
		FocusArea:       "metrics",
	},
	{
		Type:            models.Quantification,
		Difficulty:      models.DifficultyAdvanced,
		Text:            "Walk through your unit economics: what does it cost to acquire and serve one customer in {target_segment}?",
		Validation:      models.ValidationRules{MinLength: 150},
		ScoringCriteria: []string{"quantification", "specificity"},
		FocusArea:       "pricing",
	},

	// ----- strategic -----
	{
		Type:            models.Strategic,
		Difficulty:      models.DifficultyIntermediate,
		Text:            "Which go-to-market channel are you betting on for {product}, and why that one?",
		Validation:      models.ValidationRules{MinLength: 100},
		ScoringCriteria: []string{"clarity", "specificity"},
		FocusArea:       "go-to-market",
		Options: []string{
			"direct sales",
			"product-led growth",
			"partnerships",
			"content and community",
			"paid acquisition",
			"marketplaces",
		},
	},
	{
		Type:            models.Strategic,
		Difficulty:      models.DifficultyAdvanced,
		Text:            "If a well-funded competitor copied {product} tomorrow, what would keep your customers with you?",
		Validation:      models.ValidationRules{MinLength: 150},
		ScoringCriteria: []string{"clarity", "specificity"},
		FocusArea:       "competition",
	},
	{
		Type:            models.Strategic,
		Difficulty:      models.DifficultyExpert,
		Text:            "What sequencing of markets gets {product} from {target_segment} to a defensible position, and what could break it?",
		Validation:      models.ValidationRules{MinLength: 250},
		ScoringCriteria: []string{"clarity", "specificity", "quantification"},
		FocusArea:       "go-to-market",
		FollowUpConditions: []models.FollowUpCondition{
			{Condition: "score < 30", Action: "reduce_difficulty"},
		},
	},
}
