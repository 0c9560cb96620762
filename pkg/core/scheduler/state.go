package scheduler

// ScheduleState is the mutable state of one scheduling run: the growing assignment
// sequence and the number of morning slots already used on each day.
// It is owned by a single run and must not be shared.
type ScheduleState struct {
	Grid         *Grid
	Assignments  []Assignment
	MorningUsage [Days]int
}

// NewScheduleState creates an empty state over the grid
func NewScheduleState(grid *Grid) *ScheduleState {
	return &ScheduleState{Grid: grid}
}

// commit appends an assignment and updates the morning counters
func (s *ScheduleState) commit(subject Subject, slot Slot) {
	s.Assignments = append(s.Assignments, Assignment{Subject: subject, Slot: slot})
	if IsMorning(slot.Time) {
		s.MorningUsage[slot.Day]++
	}
}

// AssignmentsAt returns assignments already placed at the given day and time
func (s *ScheduleState) AssignmentsAt(day, time int) []Assignment {
	var result []Assignment
	for _, a := range s.Assignments {
		if a.Slot.Day == day && a.Slot.Time == time {
			result = append(result, a)
		}
	}
	return result
}
