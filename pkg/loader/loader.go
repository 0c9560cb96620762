package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

// RowError describes a CSV data row that was skipped. Row is 1-based and does not count the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	if e.Row == 0 {
		return e.Reason
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// subjectRecord is one raw row of the subjects dataset
type subjectRecord struct {
	Name        string `csv:"name"`
	Semester    string `csv:"semester"`
	Credits     string `csv:"credits"`
	Type        string `csv:"type"`
	Teacher     string `csv:"teacher"`
	HoursNeeded string `csv:"hours_needed"`
}

// resourceRecord is one raw row of the resources file
type resourceRecord struct {
	ResourceType string `csv:"resource_type"`
	Value        string `csv:"value"`
}

func newCSVReader(r io.Reader) gocsv.CSVReader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

func unmarshal[T any](r io.Reader) ([]T, error) {
	var records []T
	if err := gocsv.UnmarshalCSV(newCSVReader(r), &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// LoadSubjects reads the subjects dataset (name,semester,credits,type,teacher,hours_needed).
// Invalid rows are skipped and reported as RowErrors; an empty dataset is not an error.
func LoadSubjects(r io.Reader) ([]scheduler.Subject, []RowError, error) {
	records, err := unmarshal[subjectRecord](r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse subjects csv: %w", err)
	}

	subjects := make([]scheduler.Subject, 0, len(records))
	var warnings []RowError
	seen := make(map[string]bool)

	for i, record := range records {
		row := i + 1
		subject, err := parseSubject(record)
		if err != nil {
			warnings = append(warnings, RowError{Row: row, Reason: err.Error()})
			continue
		}
		if seen[subject.Key()] {
			warnings = append(warnings, RowError{
				Row:    row,
				Reason: fmt.Sprintf("duplicate subject %s in semester %s", subject.Name, subject.Semester),
			})
			continue
		}
		seen[subject.Key()] = true
		subjects = append(subjects, subject)
	}

	return subjects, warnings, nil
}

func parseSubject(record subjectRecord) (scheduler.Subject, error) {
	name := strings.TrimSpace(record.Name)
	semester := strings.TrimSpace(record.Semester)
	teacher := strings.TrimSpace(record.Teacher)

	switch {
	case name == "":
		return scheduler.Subject{}, fmt.Errorf("missing subject name")
	case semester == "":
		return scheduler.Subject{}, fmt.Errorf("missing semester for %s", name)
	case teacher == "":
		return scheduler.Subject{}, fmt.Errorf("missing teacher for %s", name)
	}

	credits, err := parseCount(record.Credits, "credits")
	if err != nil {
		return scheduler.Subject{}, err
	}
	hours, err := parseCount(record.HoursNeeded, "hours_needed")
	if err != nil {
		return scheduler.Subject{}, err
	}
	kind, err := scheduler.ParseKind(record.Type)
	if err != nil {
		return scheduler.Subject{}, err
	}

	return scheduler.Subject{
		Name:        name,
		Semester:    semester,
		Credits:     credits,
		Kind:        kind,
		Teacher:     teacher,
		HoursNeeded: hours,
	}, nil
}

func parseCount(raw, column string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative %s %d", column, n)
	}
	return n, nil
}

// LoadRooms reads the resources file (resource_type,value). "room" rows are lab-capable when
// their name contains labMarker and "lab" rows always are; other resource types are ignored.
// When no room is found the fallback rooms are returned with a warning.
func LoadRooms(r io.Reader, labMarker string, fallback []scheduler.Room) ([]scheduler.Room, []RowError, error) {
	records, err := unmarshal[resourceRecord](r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse resources csv: %w", err)
	}

	var rooms []scheduler.Room
	var warnings []RowError
	seen := make(map[string]bool)

	for i, record := range records {
		row := i + 1
		resourceType := strings.ToLower(strings.TrimSpace(record.ResourceType))
		name := strings.TrimSpace(record.Value)

		if resourceType != "room" && resourceType != "lab" {
			continue
		}
		if name == "" {
			warnings = append(warnings, RowError{Row: row, Reason: "missing room name"})
			continue
		}
		if seen[name] {
			warnings = append(warnings, RowError{Row: row, Reason: fmt.Sprintf("duplicate room %s", name)})
			continue
		}
		seen[name] = true

		rooms = append(rooms, scheduler.Room{
			Name:  name,
			IsLab: resourceType == "lab" || IsLabRoomName(name, labMarker),
		})
	}

	if len(rooms) == 0 {
		warnings = append(warnings, RowError{Reason: "no rooms found in resources; using default rooms"})
		return fallback, warnings, nil
	}

	return rooms, warnings, nil
}

// IsLabRoomName reports whether a room name carries the lab marker
func IsLabRoomName(name, labMarker string) bool {
	return labMarker != "" && strings.Contains(name, labMarker)
}

// LoadSubjectsFile opens and reads a subjects dataset
func LoadSubjectsFile(path string) ([]scheduler.Subject, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open subjects file: %w", err)
	}
	defer f.Close()

	return LoadSubjects(f)
}

// LoadRoomsFile opens and reads a resources file. An unreadable file falls back to the
// given rooms with a warning rather than failing the run.
func LoadRoomsFile(path, labMarker string, fallback []scheduler.Room) ([]scheduler.Room, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return fallback, []RowError{{Reason: fmt.Sprintf("cannot open resources file %s; using default rooms", path)}}, nil
	}
	defer f.Close()

	return LoadRooms(f, labMarker, fallback)
}
