package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

// mockPublisher captures published tabs
type mockPublisher struct {
	spreadsheetID string
	tabTitle      string
	rows          [][]string
	err           error
}

func (m *mockPublisher) PublishTab(spreadsheetID, tabTitle string, rows [][]string) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.tabTitle = tabTitle
	m.rows = rows
	return nil
}

func publishConfig() *config.Config {
	cfg := config.Default()
	cfg.Sheets.SpreadsheetID = "sheet-123"
	return cfg
}

func storeCompletedSession(t *testing.T, store db.SessionStore, status db.SessionStatus) *db.Session {
	t.Helper()
	session := &db.Session{
		ID:          "3f2a9c1b-0000-4000-8000-000000000000",
		Status:      status,
		Assignments: filterFixture(),
		CreatedAt:   time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.CreateSession(context.Background(), session))
	return session
}

func TestPublishTimetable_Success(t *testing.T) {
	store := db.NewMemoryStore()
	session := storeCompletedSession(t, store, db.StatusCompleted)
	publisher := &mockPublisher{}
	ctx := context.Background()

	published, err := PublishTimetable(ctx, store, publisher, publishConfig(), zap.NewNop(), session.ID)
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", publisher.spreadsheetID)
	assert.Equal(t, "2025-09-01 3f2a9c1b", publisher.tabTitle)
	assert.Equal(t, published.TabTitle, publisher.tabTitle)
	assert.Equal(t, published.Rows, publisher.rows)

	stored, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.PublishedAt)
}

func TestPublishTimetable_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no spreadsheet configured", func(t *testing.T) {
		store := db.NewMemoryStore()
		session := storeCompletedSession(t, store, db.StatusCompleted)

		_, err := PublishTimetable(ctx, store, &mockPublisher{}, config.Default(), zap.NewNop(), session.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no spreadsheet configured")
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := PublishTimetable(ctx, db.NewMemoryStore(), &mockPublisher{}, publishConfig(), zap.NewNop(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, db.ErrSessionNotFound)
	})

	t.Run("session not completed", func(t *testing.T) {
		store := db.NewMemoryStore()
		session := storeCompletedSession(t, store, db.StatusFailed)

		_, err := PublishTimetable(ctx, store, &mockPublisher{}, publishConfig(), zap.NewNop(), session.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only completed sessions can be published")
	})

	t.Run("publisher failure leaves session unpublished", func(t *testing.T) {
		store := db.NewMemoryStore()
		session := storeCompletedSession(t, store, db.StatusCompleted)
		publisher := &mockPublisher{err: errors.New("quota exceeded")}

		_, err := PublishTimetable(ctx, store, publisher, publishConfig(), zap.NewNop(), session.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")

		stored, err := store.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.PublishedAt)
	})
}

func TestBuildSheetRows(t *testing.T) {
	sem10 := scheduler.Subject{Name: "Compilers", Semester: "Sem10", Teacher: "T3"}
	assignments := append(filterFixture(), scheduler.Assignment{Subject: sem10, Slot: scheduler.Slot{Day: 4, Time: 5, Room: "R1"}})

	rows := BuildSheetRows(assignments)

	// Three semesters of title + header + six periods, separated by empty rows
	require.Len(t, rows, 3*8+2)

	assert.Equal(t, []string{"Semester Sem1"}, rows[0])
	assert.Equal(t, []string{"Time", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, rows[1])
	assert.Equal(t, []string{"9AM", "Math (R1) - T1", "Math (R2) - T1", "", "", ""}, rows[2])

	assert.Empty(t, rows[8])
	assert.Equal(t, []string{"Semester Sem2"}, rows[9])
	assert.Equal(t, []string{"10AM", "ChemLab (Lab1) - T2", "", "", "", ""}, rows[12])

	assert.Equal(t, []string{"Semester Sem10"}, rows[18], "semesters are in natural order")
	assert.Equal(t, "Compilers (R1) - T3", rows[25][5])
}

func TestBuildSheetRows_Empty(t *testing.T) {
	assert.Empty(t, BuildSheetRows(nil))
}
