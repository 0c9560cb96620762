package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

// FirstPeriodHour is the clock hour of time index 0 (9AM)
const FirstPeriodHour = 9

var weekdays = [scheduler.Days]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}

// Term is the date range a weekly timetable repeats over
type Term struct {
	Start time.Time
	End   time.Time

	// Closures are RRULE strings for dates with no teaching. Rules without a DTSTART
	// start at the beginning of the term.
	Closures []string
}

// Occurrence is one dated session of a weekly assignment
type Occurrence struct {
	Date     string `json:"date" csv:"date"`
	Day      string `json:"day" csv:"day"`
	Start    string `json:"start" csv:"start"`
	End      string `json:"end" csv:"end"`
	Subject  string `json:"subject" csv:"subject"`
	Semester string `json:"semester" csv:"semester"`
	Teacher  string `json:"teacher" csv:"teacher"`
	Room     string `json:"room" csv:"room"`
}

// ExpandTerm repeats every weekly assignment on each matching weekday of the term, skipping
// closed dates. Occurrences are sorted by date, start time and room.
func ExpandTerm(assignments []scheduler.Assignment, term Term) ([]Occurrence, error) {
	if term.End.Before(term.Start) {
		return nil, fmt.Errorf("term end %s is before start %s", term.End.Format(time.DateOnly), term.Start.Format(time.DateOnly))
	}

	termStart := dayStart(term.Start)
	termEnd := dayStart(term.End).AddDate(0, 0, 1).Add(-time.Second)

	closed, err := closedDates(term.Closures, termStart, termEnd)
	if err != nil {
		return nil, err
	}

	var occurrences []Occurrence
	for _, a := range assignments {
		hour := FirstPeriodHour + a.Slot.Time
		first := time.Date(termStart.Year(), termStart.Month(), termStart.Day(), hour, 0, 0, 0, termStart.Location())

		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{weekdays[a.Slot.Day]},
			Dtstart:   first,
			Until:     termEnd,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build weekly rule for %s: %w", a.Subject.Key(), err)
		}

		for _, start := range rule.All() {
			date := start.Format(time.DateOnly)
			if closed[date] {
				continue
			}
			occurrences = append(occurrences, Occurrence{
				Date:     date,
				Day:      scheduler.DayNames[a.Slot.Day],
				Start:    start.Format("15:04"),
				End:      start.Add(time.Hour).Format("15:04"),
				Subject:  a.Subject.Name,
				Semester: a.Subject.Semester,
				Teacher:  a.Subject.Teacher,
				Room:     a.Slot.Room,
			})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		if occurrences[i].Date != occurrences[j].Date {
			return occurrences[i].Date < occurrences[j].Date
		}
		if occurrences[i].Start != occurrences[j].Start {
			return occurrences[i].Start < occurrences[j].Start
		}
		return occurrences[i].Room < occurrences[j].Room
	})

	return occurrences, nil
}

// closedDates expands the closure rules into a set of dates (YYYY-MM-DD) within the term
func closedDates(closures []string, termStart, termEnd time.Time) (map[string]bool, error) {
	closed := make(map[string]bool)
	for i, raw := range closures {
		opt, err := rrule.StrToROption(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid closure rrule[%d]: %w", i, err)
		}
		if opt.Dtstart.IsZero() {
			opt.Dtstart = termStart
		}

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("invalid closure rrule[%d]: %w", i, err)
		}

		for _, t := range rule.Between(termStart, termEnd, true) {
			closed[t.Format(time.DateOnly)] = true
		}
	}
	return closed, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
