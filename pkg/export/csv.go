package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes timetable entries with a header row
func WriteCSV(w io.Writer, entries []TimetableEntry) error {
	if entries == nil {
		entries = []TimetableEntry{}
	}
	if err := gocsv.Marshal(entries, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteOccurrencesCSV writes dated term occurrences with a header row
func WriteOccurrencesCSV(w io.Writer, occurrences []Occurrence) error {
	if occurrences == nil {
		occurrences = []Occurrence{}
	}
	if err := gocsv.Marshal(occurrences, w); err != nil {
		return fmt.Errorf("failed to write calendar csv: %w", err)
	}
	return nil
}
