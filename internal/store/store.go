// Package store persists assessment-session snapshots for the duration
// of a session. Every entity in the snapshot is plain JSON with no
// cyclic references, so stores can serialize it wholesale.
package store

import (
	"context"
	"errors"

	"github.com/venturelens/assessment-engine/internal/models"
)

// ErrSessionNotFound is returned when no snapshot exists for an id.
var ErrSessionNotFound = errors.New("session not found in store")

// SessionStore holds one worksheet/history snapshot per session id.
type SessionStore interface {
	Save(ctx context.Context, session *models.AssessmentSession) error
	Get(ctx context.Context, sessionID string) (*models.AssessmentSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
