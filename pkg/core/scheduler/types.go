package scheduler

import (
	"fmt"
	"strings"
)

// Kind classifies a subject as a theory session or a lab session
type Kind string

const (
	KindTheory Kind = "Theory"
	KindLab    Kind = "Lab"
)

// ParseKind converts a raw type column ("Theory", "lab", ...) into a Kind
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "theory":
		return KindTheory, nil
	case "lab":
		return KindLab, nil
	default:
		return "", fmt.Errorf("unknown subject type %q (expected Theory or Lab)", raw)
	}
}

// Subject is a weekly class that needs HoursNeeded one-hour sessions placed in the grid.
// Subjects are read-only once loaded.
type Subject struct {
	Name        string `json:"name"`
	Semester    string `json:"semester"`
	Credits     int    `json:"credits"`
	Kind        Kind   `json:"type"`
	Teacher     string `json:"teacher"`
	HoursNeeded int    `json:"hoursNeeded"`
}

// IsLab returns true for lab subjects
func (s Subject) IsLab() bool {
	return s.Kind == KindLab
}

// Key identifies a subject uniquely (names are only unique within a semester)
func (s Subject) Key() string {
	return s.Semester + "/" + s.Name
}

// Room is a bookable room; lab subjects may only use lab-capable rooms and theory
// subjects may only use the others
type Room struct {
	Name  string `json:"name"`
	IsLab bool   `json:"isLab"`
}

// Slot is a single (day, time, room) coordinate of the weekly grid
type Slot struct {
	Day  int    `json:"day"`
	Time int    `json:"time"`
	Room string `json:"room"`
}

// Next returns the slot immediately after this one (same day, same room)
func (s Slot) Next() Slot {
	return Slot{Day: s.Day, Time: s.Time + 1, Room: s.Room}
}

// Assignment is a committed (subject, slot) pair
type Assignment struct {
	Subject Subject `json:"subject"`
	Slot    Slot    `json:"slot"`
}

// Candidate is a valid slot together with its score, alive for one search iteration
type Candidate struct {
	Slot  Slot
	Score float64
}

// Conflict records hours of a subject that could not be placed
type Conflict struct {
	Subject          string     `json:"subject"`
	Semester         string     `json:"semester,omitempty"`
	UnscheduledHours int        `json:"unscheduledHours"`
	Suggestion       string     `json:"suggestion"`
	Diagnosis        *Diagnosis `json:"diagnosis,omitempty"`
}

// HeatmapEntry is one scored candidate evaluation
type HeatmapEntry struct {
	Day   int     `json:"day"`
	Time  int     `json:"time"`
	Room  string  `json:"room"`
	Score float64 `json:"score"`
}
