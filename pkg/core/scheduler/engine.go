package scheduler

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// OverflowConflictName is the subject name of the advisory conflict recorded when the
// total demand of all subjects exceeds the grid capacity
const OverflowConflictName = "__capacity__"

// ScheduleConfig contains the input of a scheduling run
type ScheduleConfig struct {
	// Subjects to place, in any order
	Subjects []Subject

	// Rooms making up the grid (see DefaultRooms)
	Rooms []Room

	// Weights used by the slot scorer
	Weights ScoreWeights
}

// ScheduleOutcome is the result of a scheduling run
type ScheduleOutcome struct {
	// Assignments in commit order
	Assignments []Assignment

	// Conflicts for subjects that could not be fully placed, plus the overflow entry if any
	Conflicts []Conflict

	// Heatmap contains every scored candidate of the run
	Heatmap []HeatmapEntry

	// MorningUsage is the number of morning slots used per day
	MorningUsage [Days]int

	// HoursAssigned per subject key (semester/name)
	HoursAssigned map[string]int
}

// Engine runs the greedy assignment loop over a single ScheduleState
type Engine struct {
	weights   ScoreWeights
	state     *ScheduleState
	heatmap   *HeatmapRecorder
	conflicts []Conflict
	assigned  map[string]int
}

// NewEngine creates an engine over a fresh state for the given rooms
func NewEngine(rooms []Room, weights ScoreWeights) *Engine {
	return &Engine{
		weights:  weights,
		state:    NewScheduleState(NewGrid(rooms)),
		heatmap:  &HeatmapRecorder{},
		assigned: make(map[string]int),
	}
}

// Schedule places every subject greedily and returns the outcome. It never fails: subjects
// that run out of valid slots are reported as conflicts.
func Schedule(config ScheduleConfig) *ScheduleOutcome {
	engine := NewEngine(config.Rooms, config.Weights)
	return engine.Run(config.Subjects)
}

// Run schedules the subjects in priority order
func (e *Engine) Run(subjects []Subject) *ScheduleOutcome {
	e.checkCapacity(subjects)

	for _, subject := range OrderSubjects(subjects) {
		e.scheduleSubject(subject)
	}

	return e.buildOutcome()
}

// checkCapacity records the advisory overflow conflict when demand exceeds capacity
func (e *Engine) checkCapacity(subjects []Subject) {
	demand := lo.SumBy(subjects, func(s Subject) int {
		return max(s.HoursNeeded, 0)
	})
	capacity := e.state.Grid.Capacity()
	if demand <= capacity {
		return
	}

	e.conflicts = append(e.conflicts, Conflict{
		Subject:          OverflowConflictName,
		UnscheduledHours: demand - capacity,
		Suggestion: fmt.Sprintf("total demand of %d hours exceeds capacity of %d slots (%d days x %d times x %d rooms); add rooms or reduce hours",
			demand, capacity, Days, TimesPerDay, e.state.Grid.RoomCount()),
	})
}

// scheduleSubject commits slots for one subject until its hours are met or no slot is left
func (e *Engine) scheduleSubject(subject Subject) {
	key := subject.Key()

	for e.assigned[key] < subject.HoursNeeded {
		best, found := e.findBestSlot(subject)
		if !found {
			e.recordConflict(subject, subject.HoursNeeded-e.assigned[key])
			return
		}

		e.commit(subject, best)

		// Labs try to take the following period too, forming a two-hour block
		if subject.IsLab() && e.assigned[key] < subject.HoursNeeded {
			next := best.Next()
			if IsValid(subject, next, e.state) {
				e.commit(subject, next)
			}
		}
	}
}

// findBestSlot scores every valid slot and returns the best one
func (e *Engine) findBestSlot(subject Subject) (Slot, bool) {
	var best Candidate
	found := false

	for _, slot := range e.state.Grid.Slots() {
		if !IsValid(subject, slot, e.state) {
			continue
		}

		candidate := Candidate{Slot: slot, Score: Score(subject, slot, e.state, e.weights)}
		e.heatmap.Record(candidate.Slot, candidate.Score)

		if !found || betterCandidate(candidate, best) {
			best = candidate
			found = true
		}
	}

	return best.Slot, found
}

// betterCandidate orders candidates by score descending, then day, time and room ascending
func betterCandidate(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Slot.Day != b.Slot.Day {
		return a.Slot.Day < b.Slot.Day
	}
	if a.Slot.Time != b.Slot.Time {
		return a.Slot.Time < b.Slot.Time
	}
	return strings.Compare(a.Slot.Room, b.Slot.Room) < 0
}

func (e *Engine) commit(subject Subject, slot Slot) {
	e.state.commit(subject, slot)
	e.assigned[subject.Key()]++
}

func (e *Engine) recordConflict(subject Subject, unscheduled int) {
	diagnosis := Diagnose(subject, e.state)
	e.conflicts = append(e.conflicts, Conflict{
		Subject:          subject.Name,
		Semester:         subject.Semester,
		UnscheduledHours: unscheduled,
		Suggestion:       diagnosis.Suggestion(subject),
		Diagnosis:        &diagnosis,
	})
}

// buildOutcome creates the final outcome report
func (e *Engine) buildOutcome() *ScheduleOutcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &ScheduleOutcome{
		Assignments:   []Assignment{},
		Conflicts:     []Conflict{},
		Heatmap:       []HeatmapEntry{},
		MorningUsage:  e.state.MorningUsage,
		HoursAssigned: e.assigned,
	}
	outcome.Assignments = append(outcome.Assignments, e.state.Assignments...)
	outcome.Conflicts = append(outcome.Conflicts, e.conflicts...)
	outcome.Heatmap = append(outcome.Heatmap, e.heatmap.Entries()...)
	return outcome
}
