package events

import "time"

type EventType string

const (
	WorksheetAssembled EventType = "worksheet.assembled"
	ResponseScored     EventType = "response.scored"
	AdaptationApplied  EventType = "adaptation.applied"
)

const (
	eventSource  = "assessment-engine"
	eventVersion = "1.0"
)

// AssessmentEvent is the payload published for session lifecycle events.
type AssessmentEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	SessionID   string    `json:"session_id"`
	WorksheetID string    `json:"worksheet_id,omitempty"`
	QuestionID  string    `json:"question_id,omitempty"`
	Score       *int      `json:"score,omitempty"`
	Adaptations []string  `json:"adaptations,omitempty"`
	Source      string    `json:"source"`
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewAssessmentEvent fills the envelope fields for an event.
func NewAssessmentEvent(id string, eventType EventType, sessionID string) *AssessmentEvent {
	return &AssessmentEvent{
		ID:        id,
		Type:      eventType,
		SessionID: sessionID,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now(),
	}
}
