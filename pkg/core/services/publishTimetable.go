package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

// TimetablePublisher writes a tab of rows to a spreadsheet, replacing the tab's contents if it exists
type TimetablePublisher interface {
	PublishTab(spreadsheetID, tabTitle string, rows [][]string) error
}

// PublishedTimetable is the sheet content written for a session
type PublishedTimetable struct {
	SessionID string
	TabTitle  string
	Rows      [][]string
}

// PublishTimetable writes a completed session to Google Sheets as one tab holding a
// weekly grid per semester, and records when it was published.
func PublishTimetable(
	ctx context.Context,
	store db.SessionStore,
	publisher TimetablePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	sessionID string,
) (*PublishedTimetable, error) {
	logger.Debug("Starting publishTimetable", zap.String("session_id", sessionID))

	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("no spreadsheet configured: set sheets.spreadsheetID")
	}

	session, err := store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	if session.Status != db.StatusCompleted {
		return nil, fmt.Errorf("session %s is %s, only completed sessions can be published", session.ID, session.Status)
	}

	published := &PublishedTimetable{
		SessionID: session.ID,
		TabTitle:  TabTitle(session),
		Rows:      BuildSheetRows(session.Assignments),
	}

	logger.Debug("Publishing timetable",
		zap.String("tab", published.TabTitle),
		zap.Int("rows", len(published.Rows)))

	if err := publisher.PublishTab(cfg.Sheets.SpreadsheetID, published.TabTitle, published.Rows); err != nil {
		return nil, fmt.Errorf("failed to publish timetable: %w", err)
	}

	now := time.Now().UTC()
	session.PublishedAt = &now
	if err := store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record publish time: %w", err)
	}

	logger.Info("Timetable published",
		zap.String("session_id", session.ID),
		zap.String("tab", published.TabTitle))

	return published, nil
}

// TabTitle names the sheet tab for a session, e.g. "2025-09-01 3f2a9c1b"
func TabTitle(session *db.Session) string {
	id := session.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s %s", session.CreatedAt.Format(config.DateLayout), id)
}

// BuildSheetRows lays out one block per semester (in natural semester order): a title row,
// a header row of day names and one row per period. Blocks are separated by an empty row.
func BuildSheetRows(assignments []scheduler.Assignment) [][]string {
	bySemester := make(map[string][]scheduler.Assignment)
	for _, a := range assignments {
		bySemester[a.Subject.Semester] = append(bySemester[a.Subject.Semester], a)
	}

	semesters := make([]string, 0, len(bySemester))
	for semester := range bySemester {
		semesters = append(semesters, semester)
	}
	sort.Slice(semesters, func(i, j int) bool {
		return scheduler.CompareSemesters(semesters[i], semesters[j]) < 0
	})

	var rows [][]string
	for i, semester := range semesters {
		if i > 0 {
			rows = append(rows, []string{})
		}

		header := append([]string{"Time"}, scheduler.DayNames[:]...)
		rows = append(rows, []string{"Semester " + semester}, header)

		var cells [scheduler.Days][scheduler.TimesPerDay][]string
		for _, a := range bySemester[semester] {
			cells[a.Slot.Day][a.Slot.Time] = append(cells[a.Slot.Day][a.Slot.Time],
				fmt.Sprintf("%s (%s) - %s", a.Subject.Name, a.Slot.Room, a.Subject.Teacher))
		}

		for t := 0; t < scheduler.TimesPerDay; t++ {
			row := []string{scheduler.TimeLabels[t]}
			for d := 0; d < scheduler.Days; d++ {
				entries := cells[d][t]
				sort.Strings(entries)
				row = append(row, strings.Join(entries, "\n"))
			}
			rows = append(rows, row)
		}
	}

	return rows
}
