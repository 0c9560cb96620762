package api

import (
	"embed"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
	"github.com/jakechorley/timetable-scheduler/pkg/export"
	"github.com/jakechorley/timetable-scheduler/pkg/loader"
)

//go:embed examples/*.csv
var exampleFiles embed.FS

// multipart framing allowance on top of the two files
const multipartOverhead = 1 << 20

type errorResponse struct {
	Message string `json:"message"`
}

type generateResponse struct {
	SessionID     string           `json:"sessionId"`
	Status        db.SessionStatus `json:"status"`
	MorningWeight float64          `json:"morningWeight"`
	ErrorMessage  string           `json:"errorMessage,omitempty"`
	Warnings      []string         `json:"warnings,omitempty"`
}

type scheduleResponse struct {
	Status       db.SessionStatus        `json:"status"`
	ErrorMessage string                  `json:"errorMessage,omitempty"`
	Timetable    []export.TimetableEntry `json:"timetable,omitempty"`
	Conflicts    []scheduler.Conflict    `json:"conflicts,omitempty"`
	Stats        *db.Stats               `json:"stats,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
	PublishedAt  *time.Time              `json:"publishedAt,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Message: message})
}

// respondStoreError maps a session lookup failure to 404 or 500
func (s *Server) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrSessionNotFound) {
		respondError(c, http.StatusNotFound, "Session not found")
		return
	}
	s.logger.Error("Session store failure", zap.Error(err))
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// generate handles POST /api/schedule: a multipart upload of the dataset and config CSVs
// plus an optional morningWeight, clamped to [0, 20]
func (s *Server) generate(c *gin.Context) {
	limit := s.cfg.HTTP.MaxUploadBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*limit+multipartOverhead)

	datasetHeader, err := c.FormFile("dataset")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Both dataset and config files are required")
		return
	}
	configHeader, err := c.FormFile("config")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Both dataset and config files are required")
		return
	}

	for _, header := range []*multipart.FileHeader{datasetHeader, configHeader} {
		if !isCSV(header) {
			respondError(c, http.StatusBadRequest, "Only CSV files are allowed")
			return
		}
		if header.Size > limit {
			respondError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File %s exceeds the %d byte limit", header.Filename, limit))
			return
		}
	}

	morningWeight := s.cfg.MorningWeight
	if raw := c.PostForm("morningWeight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || !config.IsFiniteMorningWeight(parsed) {
			respondError(c, http.StatusBadRequest, "morningWeight must be a number")
			return
		}
		morningWeight = config.ClampMorningWeight(parsed)
	}

	subjects, subjectWarnings, err := readSubjects(datasetHeader)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	rooms, roomWarnings, err := readRooms(configHeader, s.cfg)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := services.GenerateTimetable(c.Request.Context(), s.store, s.cache, s.metrics, s.logger, services.GenerateInput{
		DatasetFilename: datasetHeader.Filename,
		ConfigFilename:  configHeader.Filename,
		Subjects:        subjects,
		Rooms:           rooms,
		MorningWeight:   morningWeight,
		Warnings:        warningMessages(subjectWarnings, roomWarnings),
	})
	if err != nil && !errors.Is(err, services.ErrGenerationFailed) {
		s.logger.Error("Failed to generate timetable", zap.Error(err))
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		SessionID:     session.ID,
		Status:        session.Status,
		MorningWeight: morningWeight,
		ErrorMessage:  session.ErrorMessage,
		Warnings:      session.Warnings,
	})
}

// getSchedule handles GET /api/schedule/:sessionId with optional semester, teacher and room filters
func (s *Server) getSchedule(c *gin.Context) {
	var filter services.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	session, err := s.store.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	if session.Status != db.StatusCompleted {
		c.JSON(http.StatusOK, scheduleResponse{
			Status:       session.Status,
			ErrorMessage: session.ErrorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, scheduleResponse{
		Status:      session.Status,
		Timetable:   export.ToTimetable(services.FilterAssignments(session.Assignments, filter)),
		Conflicts:   session.Conflicts,
		Stats:       session.Stats,
		Warnings:    session.Warnings,
		PublishedAt: session.PublishedAt,
	})
}

// getHeatmap handles GET /api/schedule/:sessionId/heatmap
func (s *Server) getHeatmap(c *gin.Context) {
	session, ok := s.completedSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId":    session.ID,
		"heatmap":      export.ToHeatmap(session.Heatmap),
		"morningUsage": morningUsage(session),
	})
}

// exportPDF handles GET /api/schedule/:sessionId/export.pdf, honouring the same filters as getSchedule
func (s *Server) exportPDF(c *gin.Context) {
	var filter services.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	session, ok := s.completedSession(c)
	if !ok {
		return
	}

	pdf, err := s.pdf.Render(services.FilterAssignments(session.Assignments, filter), "Timetable "+session.DatasetFilename)
	if err != nil {
		s.logger.Error("Failed to render PDF", zap.String("session_id", session.ID), zap.Error(err))
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="timetable-%s.pdf"`, session.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// listSessions handles GET /api/sessions
func (s *Server) listSessions(c *gin.Context) {
	sessions, err := s.store.ListSessions(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// example handles GET /api/examples/:type, serving the bundled sample CSVs
func (s *Server) example(c *gin.Context) {
	kind := c.Param("type")
	if kind != "dataset" && kind != "config" {
		respondError(c, http.StatusBadRequest, "Invalid example type")
		return
	}

	filename := fmt.Sprintf("example_%s.csv", kind)
	data, err := exampleFiles.ReadFile("examples/" + filename)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Example file not found")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// completedSession loads the path's session and writes an error response unless it completed
func (s *Server) completedSession(c *gin.Context) (*db.Session, bool) {
	session, err := s.store.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		s.respondStoreError(c, err)
		return nil, false
	}
	if session.Status != db.StatusCompleted {
		respondError(c, http.StatusConflict, fmt.Sprintf("Session is %s", session.Status))
		return nil, false
	}
	return session, true
}

func morningUsage(session *db.Session) map[string]int {
	usage := make(map[string]int, scheduler.Days)
	if session.Stats == nil {
		return usage
	}
	for day, count := range session.Stats.MorningUsage {
		usage[scheduler.DayNames[day]] = count
	}
	return usage
}

func isCSV(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return true
	}
	return header.Header.Get("Content-Type") == "text/csv"
}

func readSubjects(header *multipart.FileHeader) ([]scheduler.Subject, []loader.RowError, error) {
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return loader.LoadSubjects(f)
}

func readRooms(header *multipart.FileHeader, cfg *config.Config) ([]scheduler.Room, []loader.RowError, error) {
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return loader.LoadRooms(f, cfg.LabRoomMarker, cfg.Rooms())
}

func warningMessages(groups ...[]loader.RowError) []string {
	var messages []string
	for _, group := range groups {
		for _, w := range group {
			messages = append(messages, w.Error())
		}
	}
	return messages
}
