package db

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when a session ID is unknown to the store
var ErrSessionNotFound = errors.New("session not found")

// SessionStore defines the interface for session persistence.
// Both MemoryStore and postgres.DB implement this interface.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	UpdateSession(ctx context.Context, session *Session) error
	// ListSessions returns session summaries, newest first
	ListSessions(ctx context.Context) ([]Session, error)
}
