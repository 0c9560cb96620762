package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
	"github.com/jakechorley/timetable-scheduler/pkg/export"
	"github.com/jakechorley/timetable-scheduler/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// Server serves the timetable HTTP API
type Server struct {
	cfg     *config.Config
	store   db.SessionStore
	cache   services.ResultCache
	metrics *metrics.Metrics
	logger  *zap.Logger
	pdf     *export.PDFExporter
	router  *gin.Engine
}

// Deps are the collaborators the server needs. Cache and Metrics may be nil.
type Deps struct {
	Config  *config.Config
	Store   db.SessionStore
	Cache   services.ResultCache
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewServer builds the router and registers every route
func NewServer(deps Deps) *Server {
	s := &Server{
		cfg:     deps.Config,
		store:   deps.Store,
		cache:   deps.Cache,
		metrics: deps.Metrics,
		logger:  deps.Logger,
		pdf:     export.NewPDFExporter(),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.logger))
	r.Use(s.metrics.Middleware())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	apiGroup := r.Group("/api")
	apiGroup.POST("/schedule", s.generate)
	apiGroup.GET("/schedule/:sessionId", s.getSchedule)
	apiGroup.GET("/schedule/:sessionId/heatmap", s.getHeatmap)
	apiGroup.GET("/schedule/:sessionId/export.pdf", s.exportPDF)
	apiGroup.GET("/sessions", s.listSessions)
	apiGroup.GET("/examples/:type", s.example)

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
