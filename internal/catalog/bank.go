// Package catalog holds the static question-template bank. Templates are
// loaded at process start and never mutated; the bank is injected into
// the assembler rather than looked up through a global.
package catalog

import (
	"github.com/venturelens/assessment-engine/internal/models"
)

// QuestionBank is a fixed catalog of question templates keyed by
// (type, difficulty).
type QuestionBank struct {
	templates []models.QuestionTemplate
}

// NewQuestionBank builds a bank over the given templates. Templates with
// a non-positive weight get the default weight of 1.
func NewQuestionBank(templates []models.QuestionTemplate) *QuestionBank {
	owned := make([]models.QuestionTemplate, len(templates))
	copy(owned, templates)
	for i := range owned {
		if owned[i].Weight <= 0 {
			owned[i].Weight = 1
		}
	}
	return &QuestionBank{templates: owned}
}

// Templates returns a copy of the full catalog.
func (b *QuestionBank) Templates() []models.QuestionTemplate {
	out := make([]models.QuestionTemplate, len(b.templates))
	copy(out, b.templates)
	return out
}

// Len returns the number of templates in the bank.
func (b *QuestionBank) Len() int {
	return len(b.templates)
}

// TemplatesFor returns the templates matching the exact (type, difficulty)
// pair, in catalog order.
func (b *QuestionBank) TemplatesFor(qt models.QuestionType, difficulty models.DifficultyLevel) []models.QuestionTemplate {
	var out []models.QuestionTemplate
	for _, tmpl := range b.templates {
		if tmpl.Type == qt && tmpl.Difficulty == difficulty {
			out = append(out, tmpl)
		}
	}
	return out
}

// FindWithFallback returns templates of the given type at the requested
// difficulty, falling back to the nearest tier when none exist. The
// search steps down one tier at a time to beginner, then upward to
// expert. An empty result means the bank has no templates of that type
// at all.
func (b *QuestionBank) FindWithFallback(qt models.QuestionType, difficulty models.DifficultyLevel) []models.QuestionTemplate {
	if difficulty.Rank() < 0 {
		difficulty = models.DifficultyIntermediate
	}

	if found := b.TemplatesFor(qt, difficulty); len(found) > 0 {
		return found
	}

	for d := difficulty; d != models.DifficultyBeginner; {
		d = d.StepDown()
		if found := b.TemplatesFor(qt, d); len(found) > 0 {
			return found
		}
	}

	for d := difficulty; d != models.DifficultyExpert; {
		d = d.StepUp()
		if found := b.TemplatesFor(qt, d); len(found) > 0 {
			return found
		}
	}

	return nil
}
