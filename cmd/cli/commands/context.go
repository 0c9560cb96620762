package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/cache"
	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
	"github.com/jakechorley/timetable-scheduler/pkg/metrics"
	"github.com/jakechorley/timetable-scheduler/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Env      string
	Store    db.SessionStore
	Postgres *postgres.DB // nil unless the postgres backend is configured
	Cache    *cache.ResultCache
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Ctx      context.Context

	// NewPublisher connects to Google Sheets. Only publish needs it, so the OAuth flow
	// runs on first use rather than at startup.
	NewPublisher func() (services.TimetablePublisher, error)
}
