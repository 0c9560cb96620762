package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

func newSession(id string, createdAt time.Time) *Session {
	return &Session{
		ID:              id,
		DatasetFilename: "dataset.csv",
		ConfigFilename:  "config.csv",
		Status:          StatusProcessing,
		MorningWeight:   5,
		CreatedAt:       createdAt,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateSession(ctx, newSession("s1", created)))

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)
	assert.Equal(t, created, got.CreatedAt)
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateSession(ctx, newSession("s1", time.Now())))
	err := store.CreateSession(ctx, newSession("s1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetSession(ctx, "missing")
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	err = store.UpdateSession(ctx, newSession("missing", time.Now()))
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestMemoryStore_UpdateAndIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	session := newSession("s1", time.Now())
	require.NoError(t, store.CreateSession(ctx, session))

	session.Status = StatusCompleted
	session.Assignments = []scheduler.Assignment{{
		Subject: scheduler.Subject{Name: "Math", Semester: "Sem1", Kind: scheduler.KindTheory, Teacher: "T1", HoursNeeded: 1},
		Slot:    scheduler.Slot{Day: 0, Time: 0, Room: "Classroom1"},
	}}
	session.Stats = &Stats{TotalSubjects: 1, TotalSlots: 1}

	// Not visible until updated
	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, got.Status)

	require.NoError(t, store.UpdateSession(ctx, session))

	got, err = store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.Len(t, got.Assignments, 1)

	// Mutating a returned copy does not touch the store
	got.Assignments[0].Slot.Room = "Elsewhere"
	got.Stats.TotalSubjects = 99

	again, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Classroom1", again.Assignments[0].Slot.Room)
	assert.Equal(t, 1, again.Stats.TotalSubjects)
}

func TestMemoryStore_ListSessionsNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	older := newSession("older", base)
	older.Heatmap = []scheduler.HeatmapEntry{{Day: 0, Time: 0, Room: "R1", Score: 5}}
	require.NoError(t, store.CreateSession(ctx, older))
	require.NoError(t, store.CreateSession(ctx, newSession("newer", base.Add(time.Hour))))

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)

	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].ID)
	assert.Equal(t, "older", sessions[1].ID)
	assert.Nil(t, sessions[1].Heatmap, "summaries drop result payloads")
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, newSession("s1", time.Now())))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := store.GetSession(ctx, "s1")
			if err != nil {
				return
			}
			s.Status = StatusCompleted
			_ = store.UpdateSession(ctx, s)
			_, _ = store.ListSessions(ctx)
		}()
	}
	wg.Wait()

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}
