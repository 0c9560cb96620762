package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

const sessionColumns = `id, dataset_filename, config_filename, status, error_message, morning_weight,
	rooms, assignments, conflicts, heatmap, warnings, stats, created_at, completed_at, published_at`

// CreateSession inserts a new session row
func (d *DB) CreateSession(ctx context.Context, session *db.Session) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO session (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, sessionArgs(session)...)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID
func (d *DB) GetSession(ctx context.Context, id string) (*db.Session, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM session WHERE id = $1`, id)

	session, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// UpdateSession overwrites the mutable fields of a session
func (d *DB) UpdateSession(ctx context.Context, session *db.Session) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE session SET
			status = $2, error_message = $3, morning_weight = $4, rooms = $5, assignments = $6,
			conflicts = $7, heatmap = $8, warnings = $9, stats = $10, completed_at = $11,
			published_at = $12
		WHERE id = $1
	`,
		session.ID,
		string(session.Status),
		session.ErrorMessage,
		session.MorningWeight,
		nonNil(session.Rooms),
		nonNil(session.Assignments),
		nonNil(session.Conflicts),
		nonNil(session.Heatmap),
		nonNil(session.Warnings),
		session.Stats,
		session.CompletedAt,
		session.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", db.ErrSessionNotFound, session.ID)
	}
	return nil
}

// ListSessions returns session summaries, newest first
func (d *DB) ListSessions(ctx context.Context) ([]db.Session, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, dataset_filename, config_filename, status, error_message, morning_weight,
			'[]'::jsonb, '[]'::jsonb, '[]'::jsonb, '[]'::jsonb, '[]'::jsonb, stats,
			created_at, completed_at, published_at
		FROM session
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []db.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session.Summary())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// sessionArgs returns the column values in sessionColumns order. JSONB columns are
// encoded by pgx from the Go values.
func sessionArgs(s *db.Session) []any {
	return []any{
		s.ID,
		s.DatasetFilename,
		s.ConfigFilename,
		string(s.Status),
		s.ErrorMessage,
		s.MorningWeight,
		nonNil(s.Rooms),
		nonNil(s.Assignments),
		nonNil(s.Conflicts),
		nonNil(s.Heatmap),
		nonNil(s.Warnings),
		s.Stats,
		s.CreatedAt.UTC(),
		s.CompletedAt,
		s.PublishedAt,
	}
}

func scanSession(row pgx.Row) (*db.Session, error) {
	var s db.Session
	var status string
	err := row.Scan(
		&s.ID,
		&s.DatasetFilename,
		&s.ConfigFilename,
		&status,
		&s.ErrorMessage,
		&s.MorningWeight,
		&s.Rooms,
		&s.Assignments,
		&s.Conflicts,
		&s.Heatmap,
		&s.Warnings,
		&s.Stats,
		&s.CreatedAt,
		&s.CompletedAt,
		&s.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = db.SessionStatus(status)
	return &s, nil
}

// nonNil keeps JSONB columns as [] rather than null
func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

var _ db.SessionStore = (*DB)(nil)
