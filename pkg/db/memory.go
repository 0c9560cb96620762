package db

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps sessions in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// CreateSession stores a new session. The ID must be unused.
func (m *MemoryStore) CreateSession(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	m.sessions[session.ID] = cloneSession(session)
	return nil
}

// GetSession returns a copy of the stored session
func (m *MemoryStore) GetSession(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return cloneSession(session), nil
}

// UpdateSession replaces a stored session
func (m *MemoryStore) UpdateSession(ctx context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[session.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, session.ID)
	}
	m.sessions[session.ID] = cloneSession(session)
	return nil
}

// ListSessions returns session summaries, newest first
func (m *MemoryStore) ListSessions(ctx context.Context) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s.Summary())
	}
	slices.SortFunc(sessions, func(a, b Session) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sessions, nil
}

func cloneSession(s *Session) *Session {
	c := *s
	c.Rooms = slices.Clone(s.Rooms)
	c.Assignments = slices.Clone(s.Assignments)
	c.Conflicts = slices.Clone(s.Conflicts)
	c.Heatmap = slices.Clone(s.Heatmap)
	c.Warnings = slices.Clone(s.Warnings)
	if s.Stats != nil {
		stats := *s.Stats
		c.Stats = &stats
	}
	if s.CompletedAt != nil {
		completed := *s.CompletedAt
		c.CompletedAt = &completed
	}
	if s.PublishedAt != nil {
		published := *s.PublishedAt
		c.PublishedAt = &published
	}
	return &c
}

var _ SessionStore = (*MemoryStore)(nil)
