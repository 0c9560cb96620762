package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/pkg/cache"
	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

// ErrGenerationFailed marks a run that ended with a failed session
var ErrGenerationFailed = errors.New("timetable generation failed")

// ResultCache defines the cache operations needed for generating timetables
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (*scheduler.ScheduleOutcome, error)
	Set(ctx context.Context, fingerprint string, outcome *scheduler.ScheduleOutcome) error
}

// RunRecorder receives run metrics
type RunRecorder interface {
	ObserveRun(status string, duration time.Duration, assignedHours, unscheduledHours int)
	ObserveCacheLookup(hit bool)
}

// GenerateInput is everything needed to run the scheduler once
type GenerateInput struct {
	DatasetFilename string
	ConfigFilename  string
	Subjects        []scheduler.Subject
	Rooms           []scheduler.Room
	MorningWeight   float64

	// Warnings collected while loading the inputs, stored on the session
	Warnings []string
}

// GenerateTimetable creates a session, runs the scheduler (or reuses a cached outcome),
// verifies the result and stores it on the session.
// A run that cannot produce a timetable leaves a failed session and returns ErrGenerationFailed.
func GenerateTimetable(
	ctx context.Context,
	store db.SessionStore,
	resultCache ResultCache,
	recorder RunRecorder,
	logger *zap.Logger,
	input GenerateInput,
) (*db.Session, error) {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if math.IsNaN(input.MorningWeight) || math.IsInf(input.MorningWeight, 0) {
		return nil, fmt.Errorf("morning weight must be a finite number, got %v", input.MorningWeight)
	}
	started := time.Now()

	session := &db.Session{
		ID:              uuid.New().String(),
		DatasetFilename: input.DatasetFilename,
		ConfigFilename:  input.ConfigFilename,
		Status:          db.StatusProcessing,
		MorningWeight:   input.MorningWeight,
		Rooms:           input.Rooms,
		Warnings:        input.Warnings,
		CreatedAt:       started.UTC(),
	}

	logger.Debug("Creating session",
		zap.String("session_id", session.ID),
		zap.Int("subjects", len(input.Subjects)),
		zap.Int("rooms", len(input.Rooms)),
		zap.Float64("morning_weight", input.MorningWeight))

	if err := store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if len(input.Subjects) == 0 {
		return failSession(ctx, store, recorder, logger, session, started, "no subjects loaded from dataset")
	}

	weights := scheduler.DefaultScoreWeights(input.MorningWeight)
	fingerprint, err := cache.Fingerprint(input.Subjects, input.Rooms, weights)
	if err != nil {
		logger.Warn("Skipping result cache", zap.Error(err))
		resultCache = nil
	}
	outcome := lookupCachedOutcome(ctx, resultCache, recorder, logger, fingerprint)
	cached := outcome != nil

	if !cached {
		logger.Debug("Running scheduler", zap.String("session_id", session.ID))
		outcome = scheduler.Schedule(scheduler.ScheduleConfig{
			Subjects: input.Subjects,
			Rooms:    input.Rooms,
			Weights:  weights,
		})
	}

	if violations := scheduler.ValidateSchedule(scheduler.NewGrid(input.Rooms), outcome.Assignments); len(violations) > 0 {
		for _, v := range violations {
			logger.Error("Schedule violation",
				zap.String("constraint", v.Constraint),
				zap.String("description", v.Description))
		}
		return failSession(ctx, store, recorder, logger, session, started,
			fmt.Sprintf("generated schedule broke %d constraints: %s", len(violations), violations[0].Description))
	}

	stats := ComputeStats(input.Subjects, input.Rooms, outcome)
	completed := time.Now().UTC()

	session.Status = db.StatusCompleted
	session.Assignments = outcome.Assignments
	session.Conflicts = outcome.Conflicts
	session.Heatmap = outcome.Heatmap
	session.Stats = &stats
	session.CompletedAt = &completed

	if err := store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session result: %w", err)
	}

	recorder.ObserveRun(string(db.StatusCompleted), time.Since(started), stats.TotalSlots, stats.UnscheduledHours)

	if !cached && resultCache != nil {
		if err := resultCache.Set(ctx, fingerprint, outcome); err != nil {
			logger.Warn("Failed to cache schedule result", zap.Error(err))
		}
	}

	logger.Info("Timetable generated",
		zap.String("session_id", session.ID),
		zap.Int("assignments", len(outcome.Assignments)),
		zap.Int("conflicts", len(outcome.Conflicts)),
		zap.Int("unscheduled_hours", stats.UnscheduledHours),
		zap.Ints("morning_usage", outcome.MorningUsage[:]),
		zap.Bool("cached", cached))

	return session, nil
}

func lookupCachedOutcome(
	ctx context.Context,
	resultCache ResultCache,
	recorder RunRecorder,
	logger *zap.Logger,
	fingerprint string,
) *scheduler.ScheduleOutcome {
	if resultCache == nil {
		return nil
	}

	outcome, err := resultCache.Get(ctx, fingerprint)
	switch {
	case err == nil:
		recorder.ObserveCacheLookup(true)
		logger.Debug("Reusing cached schedule", zap.String("fingerprint", fingerprint))
		return outcome
	case errors.Is(err, cache.ErrCacheMiss):
		recorder.ObserveCacheLookup(false)
	default:
		recorder.ObserveCacheLookup(false)
		logger.Warn("Result cache lookup failed", zap.Error(err))
	}
	return nil
}

func failSession(
	ctx context.Context,
	store db.SessionStore,
	recorder RunRecorder,
	logger *zap.Logger,
	session *db.Session,
	started time.Time,
	message string,
) (*db.Session, error) {
	completed := time.Now().UTC()
	session.Status = db.StatusFailed
	session.ErrorMessage = message
	session.CompletedAt = &completed

	if err := store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to mark session failed: %w", err)
	}

	recorder.ObserveRun(string(db.StatusFailed), time.Since(started), 0, 0)
	logger.Warn("Timetable generation failed", zap.String("session_id", session.ID), zap.String("reason", message))

	return session, fmt.Errorf("%w: %s", ErrGenerationFailed, message)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(string, time.Duration, int, int) {}
func (nopRecorder) ObserveCacheLookup(bool)                    {}
