package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
	"github.com/jakechorley/timetable-scheduler/pkg/export"
)

// TermCalendar expands a completed session's weekly timetable into dated occurrences over
// the configured term, skipping closures
func TermCalendar(
	ctx context.Context,
	store db.SessionStore,
	cfg *config.Config,
	logger *zap.Logger,
	sessionID string,
	filter Filter,
) ([]export.Occurrence, error) {
	start, end, err := cfg.Term.Dates()
	if err != nil {
		return nil, fmt.Errorf("term is not configured: %w", err)
	}

	session, err := store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if session.Status != db.StatusCompleted {
		return nil, fmt.Errorf("session %s is %s, no timetable to expand", session.ID, session.Status)
	}

	term := export.Term{
		Start: start,
		End:   end,
		Closures: lo.Map(cfg.Term.Closures, func(c config.Closure, _ int) string {
			return c.RRule
		}),
	}

	occurrences, err := export.ExpandTerm(FilterAssignments(session.Assignments, filter), term)
	if err != nil {
		return nil, fmt.Errorf("failed to expand term: %w", err)
	}

	logger.Debug("Expanded term calendar",
		zap.String("session_id", session.ID),
		zap.String("start", cfg.Term.Start),
		zap.String("end", cfg.Term.End),
		zap.Int("closures", len(term.Closures)),
		zap.Int("occurrences", len(occurrences)))

	return occurrences, nil
}
