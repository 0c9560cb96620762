package scheduler

import "fmt"

// FailureReason names the hard constraint a slot violates for a subject
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonOutOfGrid
	ReasonRoomType
	ReasonTeacher
	ReasonSemester
	ReasonRoom
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfGrid:
		return "out of grid"
	case ReasonRoomType:
		return "room type"
	case ReasonTeacher:
		return "teacher"
	case ReasonSemester:
		return "semester"
	case ReasonRoom:
		return "room"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Check returns the first hard constraint the slot violates for the subject, in the
// order room type, teacher, semester, room. ReasonNone means the slot is valid.
func Check(subject Subject, slot Slot, state *ScheduleState) FailureReason {
	if !state.Grid.Contains(slot) {
		return ReasonOutOfGrid
	}

	if subject.IsLab() != state.Grid.IsLabRoom(slot.Room) {
		return ReasonRoomType
	}

	teacherClash, semesterClash, roomClash := false, false, false
	for _, assigned := range state.Assignments {
		if assigned.Slot.Day != slot.Day || assigned.Slot.Time != slot.Time {
			continue
		}
		if assigned.Subject.Teacher == subject.Teacher {
			teacherClash = true
		}
		if assigned.Subject.Semester == subject.Semester {
			semesterClash = true
		}
		if assigned.Slot.Room == slot.Room {
			roomClash = true
		}
	}

	switch {
	case teacherClash:
		return ReasonTeacher
	case semesterClash:
		return ReasonSemester
	case roomClash:
		return ReasonRoom
	}
	return ReasonNone
}

// IsValid reports whether the subject can be placed in the slot given the current state
func IsValid(subject Subject, slot Slot, state *ScheduleState) bool {
	return Check(subject, slot, state) == ReasonNone
}

// ScheduleViolation describes a constraint broken in a finished schedule
type ScheduleViolation struct {
	Slot        Slot
	Constraint  string
	Description string
}

// ValidateSchedule re-checks the hard constraints over a finished assignment sequence.
// An empty result means the schedule is valid.
func ValidateSchedule(grid *Grid, assignments []Assignment) []ScheduleViolation {
	var violations []ScheduleViolation

	type cell struct{ day, time int }
	teachers := make(map[cell]map[string]string)
	semesters := make(map[cell]map[string]string)
	rooms := make(map[cell]map[string]string)

	claim := func(index map[cell]map[string]string, c cell, key, owner string) (string, bool) {
		if index[c] == nil {
			index[c] = make(map[string]string)
		}
		if previous, taken := index[c][key]; taken {
			return previous, true
		}
		index[c][key] = owner
		return "", false
	}

	for _, a := range assignments {
		c := cell{a.Slot.Day, a.Slot.Time}
		owner := a.Subject.Key()

		if !grid.Contains(a.Slot) {
			violations = append(violations, ScheduleViolation{
				Slot:        a.Slot,
				Constraint:  "Grid",
				Description: fmt.Sprintf("%s is placed outside the grid", owner),
			})
			continue
		}

		if a.Subject.IsLab() != grid.IsLabRoom(a.Slot.Room) {
			violations = append(violations, ScheduleViolation{
				Slot:        a.Slot,
				Constraint:  "RoomType",
				Description: fmt.Sprintf("%s subject %s is placed in room %s", a.Subject.Kind, owner, a.Slot.Room),
			})
		}
		if previous, clash := claim(teachers, c, a.Subject.Teacher, owner); clash {
			violations = append(violations, ScheduleViolation{
				Slot:        a.Slot,
				Constraint:  "Teacher",
				Description: fmt.Sprintf("teacher %s is double-booked by %s and %s", a.Subject.Teacher, previous, owner),
			})
		}
		if previous, clash := claim(semesters, c, a.Subject.Semester, owner); clash {
			violations = append(violations, ScheduleViolation{
				Slot:        a.Slot,
				Constraint:  "Semester",
				Description: fmt.Sprintf("semester %s is double-booked by %s and %s", a.Subject.Semester, previous, owner),
			})
		}
		if previous, clash := claim(rooms, c, a.Slot.Room, owner); clash {
			violations = append(violations, ScheduleViolation{
				Slot:        a.Slot,
				Constraint:  "Room",
				Description: fmt.Sprintf("room %s is double-booked by %s and %s", a.Slot.Room, previous, owner),
			})
		}
	}

	return violations
}
