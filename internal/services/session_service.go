package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/venturelens/assessment-engine/internal/events"
	"github.com/venturelens/assessment-engine/internal/models"
	"github.com/venturelens/assessment-engine/internal/store"
)

// SessionService owns the per-session worksheet and response history
// lifecycle around the pure planning/scoring core. Callers are expected
// to serialize submissions per session id; the service itself does no
// cross-session locking.
type SessionService struct {
	planner    *StrategyPlanner
	assembler  *WorksheetAssembler
	controller *AdaptationController
	sessions   store.SessionStore
	publisher  events.EventPublisher
	logger     *slog.Logger
}

func NewSessionService(
	planner *StrategyPlanner,
	assembler *WorksheetAssembler,
	controller *AdaptationController,
	sessions store.SessionStore,
	publisher events.EventPublisher,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		planner:    planner,
		assembler:  assembler,
		controller: controller,
		sessions:   sessions,
		publisher:  publisher,
		logger:     logger,
	}
}

// Start plans a strategy from the context and history, assembles the
// worksheet, and persists the new session.
func (s *SessionService) Start(ctx context.Context, assessCtx models.AssessmentContext, history []models.HistoryEntry) (*models.AssessmentSession, error) {
	strategy := s.planner.PlanStrategy(assessCtx, history)

	worksheet, err := s.assembler.Assemble(strategy, templateVariables(assessCtx))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble worksheet: %w", err)
	}

	now := time.Now()
	session := &models.AssessmentSession{
		ID:        uuid.NewString(),
		Context:   assessCtx,
		Worksheet: worksheet,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	event := events.NewAssessmentEvent(uuid.NewString(), events.WorksheetAssembled, session.ID)
	event.WorksheetID = worksheet.ID
	s.publish(ctx, event)

	s.logger.Info("assessment session started",
		"session_id", session.ID,
		"worksheet_id", worksheet.ID,
		"questions", len(worksheet.Questions))

	return session, nil
}

// Get returns the stored session snapshot.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.AssessmentSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// Submit scores an answer, applies adaptations, persists the mutated
// session, and publishes the resulting events.
func (s *SessionService) Submit(ctx context.Context, sessionID, questionID, answer string) (*models.ProcessResult, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Worksheet == nil {
		return nil, ErrWorksheetNotAssembled
	}

	result, err := s.controller.ProcessResponse(session.Worksheet, &session.History, questionID, answer)
	if err != nil {
		return nil, err
	}

	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if result.Score != nil {
		event := events.NewAssessmentEvent(uuid.NewString(), events.ResponseScored, sessionID)
		event.WorksheetID = session.Worksheet.ID
		event.QuestionID = questionID
		event.Score = &result.Score.Score
		s.publish(ctx, event)
	}

	if len(result.Adaptations) > 0 {
		event := events.NewAssessmentEvent(uuid.NewString(), events.AdaptationApplied, sessionID)
		event.WorksheetID = session.Worksheet.ID
		event.QuestionID = questionID
		for _, adaptation := range result.Adaptations {
			event.Adaptations = append(event.Adaptations, string(adaptation.Action))
		}
		s.publish(ctx, event)
	}

	return result, nil
}

// NextQuestion returns the question following currentID in the stored
// worksheet, or nil when currentID is last or unknown.
func (s *SessionService) NextQuestion(ctx context.Context, sessionID, currentID string) (*models.Question, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Worksheet == nil {
		return nil, ErrWorksheetNotAssembled
	}
	return s.controller.NextQuestion(session.Worksheet, currentID), nil
}

// End removes the stored session; questions are owned by the worksheet
// and die with it.
func (s *SessionService) End(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionService) publish(ctx context.Context, event *events.AssessmentEvent) {
	if err := s.publisher.PublishAssessmentEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish event",
			"event_type", event.Type,
			"session_id", event.SessionID,
			"error", err)
	}
}

// templateVariables flattens the context into the assembler's variable
// map. The reserved industry/company_stage keys select the enrichment
// tables; caller variables override the defaults.
func templateVariables(assessCtx models.AssessmentContext) map[string]string {
	vars := make(map[string]string, len(assessCtx.Variables)+2)
	if assessCtx.Industry != "" {
		vars["industry"] = string(assessCtx.Industry)
	}
	if assessCtx.CompanyStage != "" {
		vars["company_stage"] = string(assessCtx.CompanyStage)
	}
	for k, v := range assessCtx.Variables {
		vars[k] = v
	}
	return vars
}
