package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venturelens/assessment-engine/internal/catalog"
	"github.com/venturelens/assessment-engine/internal/events"
	"github.com/venturelens/assessment-engine/internal/models"
	"github.com/venturelens/assessment-engine/internal/store"
)

type sessionFixture struct {
	service   *SessionService
	store     *store.MemoryStore
	publisher *events.MockEventPublisher
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	logger := testLogger()
	scorer := NewResponseScorer(logger)
	memory := store.NewMemoryStore()
	publisher := events.NewMockEventPublisher(logger)

	service := NewSessionService(
		NewStrategyPlanner(logger),
		newTestAssembler(t, catalog.DefaultBank()),
		NewAdaptationController(scorer, logger,
			WithControllerIDGenerator(sequentialIDs("ins")),
			WithControllerClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })),
		memory,
		publisher,
		logger,
	)
	return &sessionFixture{service: service, store: memory, publisher: publisher}
}

func TestSessionService_StartPersistsAndPublishes(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()

	session, err := fix.service.Start(ctx, models.AssessmentContext{}, nil)
	require.NoError(t, err)
	require.NotNil(t, session.Worksheet)
	assert.NotEmpty(t, session.ID)
	assert.GreaterOrEqual(t, len(session.Worksheet.Questions), MinQuestions)

	stored, err := fix.store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Worksheet.ID, stored.Worksheet.ID)

	published := fix.publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.WorksheetAssembled, published[0].Type)
	assert.Equal(t, session.ID, published[0].SessionID)
	assert.Equal(t, session.Worksheet.ID, published[0].WorksheetID)
}

func TestSessionService_StartAppliesContextToWorksheet(t *testing.T) {
	fix := newSessionFixture(t)

	session, err := fix.service.Start(context.Background(), models.AssessmentContext{
		CompanyStage: models.StageSeed,
		Industry:     models.IndustryB2BSaaS,
		Variables:    map[string]string{"product": "Acme Dispatch"},
	}, nil)
	require.NoError(t, err)

	for _, q := range session.Worksheet.Questions {
		assert.NotEmpty(t, q.IndustryHelp)
		assert.NotEmpty(t, q.StageGuidance)
		assert.NotContains(t, q.Text, "{product}")
	}
}

func TestSessionService_GetUnknownSession(t *testing.T) {
	fix := newSessionFixture(t)

	_, err := fix.service.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.True(t, IsNotFound(err))
}

func TestSessionService_SubmitScoresAndPersistsHistory(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()

	session, err := fix.service.Start(ctx, models.AssessmentContext{}, nil)
	require.NoError(t, err)
	first := session.Worksheet.Questions[0]

	answer := strings.Repeat("a thorough description of the customer problem ", 5)
	result, err := fix.service.Submit(ctx, session.ID, first.ID, answer)
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, session.Worksheet.Questions[1].ID, result.NextQuestion.ID)

	// The history survives the store roundtrip.
	stored, err := fix.service.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, stored.History.Answered(first.ID))

	published := fix.publisher.PublishedEvents()
	require.Len(t, published, 2) // worksheet.assembled, then the score
	scored := published[1]
	assert.Equal(t, events.ResponseScored, scored.Type)
	assert.Equal(t, first.ID, scored.QuestionID)
	require.NotNil(t, scored.Score)
	assert.Equal(t, result.Score.Score, *scored.Score)
}

func TestSessionService_SubmitPublishesAdaptations(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()

	session, err := fix.service.Start(ctx, models.AssessmentContext{}, nil)
	require.NoError(t, err)
	first := session.Worksheet.Questions[0]

	result, err := fix.service.Submit(ctx, session.ID, first.ID, "not sure")
	require.NoError(t, err)
	require.NotEmpty(t, result.Adaptations)

	// The inserted clarification is persisted with the worksheet.
	stored, err := fix.service.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Worksheet.Questions, len(session.Worksheet.Questions)+1)
	assert.Equal(t, result.Adaptations[0].InsertedID, stored.Worksheet.Questions[1].ID)

	published := fix.publisher.PublishedEvents()
	require.Len(t, published, 3) // assembled, scored, adaptation
	assert.Equal(t, events.AdaptationApplied, published[2].Type)
	assert.Contains(t, published[2].Adaptations, string(models.ActionAddClarification))
}

func TestSessionService_SubmitUnknownQuestionSkipsScoreEvent(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()

	session, err := fix.service.Start(ctx, models.AssessmentContext{}, nil)
	require.NoError(t, err)

	result, err := fix.service.Submit(ctx, session.ID, "ghost", "some answer long enough to pass")
	require.NoError(t, err)
	assert.Nil(t, result.Score)
	assert.Empty(t, result.Adaptations)

	published := fix.publisher.PublishedEvents()
	assert.Len(t, published, 1) // only the assembly event
}

func TestSessionService_SubmitWithoutWorksheet(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()
	require.NoError(t, fix.store.Save(ctx, &models.AssessmentSession{ID: "bare"}))

	_, err := fix.service.Submit(ctx, "bare", "q-1", "answer")

	assert.ErrorIs(t, err, ErrWorksheetNotAssembled)
	assert.True(t, IsInvalidState(err))
}

func TestSessionService_SubmitUnknownSession(t *testing.T) {
	fix := newSessionFixture(t)

	_, err := fix.service.Submit(context.Background(), "missing", "q-1", "answer")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_NextQuestion(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()

	session, err := fix.service.Start(ctx, models.AssessmentContext{}, nil)
	require.NoError(t, err)
	questions := session.Worksheet.Questions

	next, err := fix.service.NextQuestion(ctx, session.ID, questions[0].ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, questions[1].ID, next.ID)

	last, err := fix.service.NextQuestion(ctx, session.ID, questions[len(questions)-1].ID)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSessionService_EndRemovesSession(t *testing.T) {
	fix := newSessionFixture(t)
	ctx := context.Background()

	session, err := fix.service.Start(ctx, models.AssessmentContext{}, nil)
	require.NoError(t, err)

	require.NoError(t, fix.service.End(ctx, session.ID))

	_, err = fix.service.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// mockSessionStore lets tests force persistence failures.
type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Save(ctx context.Context, session *models.AssessmentSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionStore) Get(ctx context.Context, sessionID string) (*models.AssessmentSession, error) {
	args := m.Called(ctx, sessionID)
	if session := args.Get(0); session != nil {
		return session.(*models.AssessmentSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func TestSessionService_StartSaveFailure(t *testing.T) {
	logger := testLogger()
	sessions := new(mockSessionStore)
	sessions.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	service := NewSessionService(
		NewStrategyPlanner(logger),
		newTestAssembler(t, catalog.DefaultBank()),
		NewAdaptationController(NewResponseScorer(logger), logger),
		sessions,
		events.NewMockEventPublisher(logger),
		logger,
	)

	_, err := service.Start(context.Background(), models.AssessmentContext{}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save session")
	sessions.AssertExpectations(t)
}
