package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturelens/assessment-engine/internal/models"
)

func sampleSession(id string) *models.AssessmentSession {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.AssessmentSession{
		ID: id,
		Context: models.AssessmentContext{
			CompanyStage: models.StageSeed,
			Industry:     models.IndustryB2BSaaS,
		},
		Worksheet: &models.Worksheet{
			ID: "ws-" + id,
			Questions: []models.Question{
				{
					ID:         "q-1",
					Type:       models.Diagnostic,
					Difficulty: models.DifficultyBeginner,
					Text:       "What problem are you solving?",
					Weight:     1,
					Required:   true,
				},
			},
			CreatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStore_Roundtrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSession("s-1")))

	got, err := s.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", got.ID)
	require.NotNil(t, got.Worksheet)
	assert.Equal(t, "ws-s-1", got.Worksheet.ID)
	assert.Len(t, got.Worksheet.Questions, 1)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleSession("s-1")))

	first, err := s.Get(ctx, "s-1")
	require.NoError(t, err)
	first.Worksheet.Questions[0].Text = "mutated"

	second, err := s.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "What problem are you solving?", second.Worksheet.Questions[0].Text)
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.True(t, IsNotFound(err))
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	session := sampleSession("s-1")
	require.NoError(t, s.Save(ctx, session))

	session.Worksheet.Questions[0].Text = "updated question"
	require.NoError(t, s.Save(ctx, session))

	got, err := s.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "updated question", got.Worksheet.Questions[0].Text)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleSession("s-1")))

	require.NoError(t, s.Delete(ctx, "s-1"))

	_, err := s.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an absent session is not an error.
	assert.NoError(t, s.Delete(ctx, "missing"))
}
