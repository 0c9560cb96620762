package db

import (
	"time"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

// SessionStatus is the lifecycle state of a scheduling session
type SessionStatus string

const (
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// Stats summarises a finished schedule
type Stats struct {
	TotalSubjects    int                  `json:"totalSubjects"`
	TotalTeachers    int                  `json:"totalTeachers"`
	RoomsUtilized    int                  `json:"roomsUtilized"`
	TotalSlots       int                  `json:"totalSlots"`
	Capacity         int                  `json:"capacity"`
	UnscheduledHours int                  `json:"unscheduledHours"`
	MorningUsage     [scheduler.Days]int  `json:"morningUsage"`
}

// Session is one scheduling run together with its inputs and results
type Session struct {
	ID              string                   `json:"id"`
	DatasetFilename string                   `json:"datasetFilename"`
	ConfigFilename  string                   `json:"configFilename"`
	Status          SessionStatus            `json:"status"`
	ErrorMessage    string                   `json:"errorMessage,omitempty"`
	MorningWeight   float64                  `json:"morningWeight"`
	Rooms           []scheduler.Room         `json:"rooms"`
	Assignments     []scheduler.Assignment   `json:"assignments"`
	Conflicts       []scheduler.Conflict     `json:"conflicts"`
	Heatmap         []scheduler.HeatmapEntry `json:"heatmap"`
	Warnings        []string                 `json:"warnings,omitempty"`
	Stats           *Stats                   `json:"stats,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	CompletedAt     *time.Time               `json:"completedAt,omitempty"`
	PublishedAt     *time.Time               `json:"publishedAt,omitempty"`
}

// Summary returns a copy of the session without the bulky result fields
func (s Session) Summary() Session {
	s.Rooms = nil
	s.Assignments = nil
	s.Conflicts = nil
	s.Heatmap = nil
	s.Warnings = nil
	return s
}
