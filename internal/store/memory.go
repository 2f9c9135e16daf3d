package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/venturelens/assessment-engine/internal/models"
)

// MemoryStore is an in-process SessionStore used in tests and when no
// redis is configured. Snapshots are stored as JSON so the store has the
// same copy semantics as the redis implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, session *models.AssessmentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = data
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*models.AssessmentSession, error) {
	m.mu.RLock()
	data, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.AssessmentSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
