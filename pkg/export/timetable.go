package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

// TimetableEntry is one assignment in the published wire format, with the day and time
// rendered as display labels
type TimetableEntry struct {
	Day      string `json:"day" csv:"day"`
	Time     string `json:"time" csv:"time"`
	Room     string `json:"room" csv:"room"`
	Subject  string `json:"subject" csv:"subject"`
	Teacher  string `json:"teacher" csv:"teacher"`
	Semester string `json:"semester" csv:"semester"`
}

// HeatmapCell is one heatmap evaluation with display labels
type HeatmapCell struct {
	Day   string  `json:"day"`
	Time  string  `json:"time"`
	Room  string  `json:"room"`
	Score float64 `json:"score"`
}

// ToTimetable converts assignments to wire entries, preserving commit order
func ToTimetable(assignments []scheduler.Assignment) []TimetableEntry {
	entries := make([]TimetableEntry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, TimetableEntry{
			Day:      scheduler.DayNames[a.Slot.Day],
			Time:     scheduler.TimeLabels[a.Slot.Time],
			Room:     a.Slot.Room,
			Subject:  a.Subject.Name,
			Teacher:  a.Subject.Teacher,
			Semester: a.Subject.Semester,
		})
	}
	return entries
}

// ToHeatmap converts raw heatmap entries to labelled cells
func ToHeatmap(entries []scheduler.HeatmapEntry) []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(entries))
	for _, e := range entries {
		cells = append(cells, HeatmapCell{
			Day:   scheduler.DayNames[e.Day],
			Time:  scheduler.TimeLabels[e.Time],
			Room:  e.Room,
			Score: e.Score,
		})
	}
	return cells
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// WriteFile creates path and hands it to write
func WriteFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
