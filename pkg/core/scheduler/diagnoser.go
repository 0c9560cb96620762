package scheduler

import "fmt"

// Diagnosis counts, for every slot of the grid, the first constraint that rules it out
// for a subject
type Diagnosis struct {
	SlotsChecked     int `json:"slotsChecked"`
	RoomTypeMismatch int `json:"roomTypeMismatch"`
	TeacherConflict  int `json:"teacherConflict"`
	SemesterConflict int `json:"semesterConflict"`
	RoomConflict     int `json:"roomConflict"`
}

// Diagnose re-scans the whole grid to explain why the subject has no valid slot left.
// It does not modify the state.
func Diagnose(subject Subject, state *ScheduleState) Diagnosis {
	var d Diagnosis
	for _, slot := range state.Grid.Slots() {
		d.SlotsChecked++
		switch Check(subject, slot, state) {
		case ReasonRoomType:
			d.RoomTypeMismatch++
		case ReasonTeacher:
			d.TeacherConflict++
		case ReasonSemester:
			d.SemesterConflict++
		case ReasonRoom:
			d.RoomConflict++
		}
	}
	return d
}

// Suggestion turns the counts into an actionable message naming the dominant cause
func (d Diagnosis) Suggestion(subject Subject) string {
	if d.SlotsChecked == 0 {
		return "no rooms configured: add rooms to the resource file"
	}

	switch d.SlotsChecked {
	case d.RoomTypeMismatch:
		roomType := "non-lab"
		if subject.IsLab() {
			roomType = "lab-capable"
		}
		return fmt.Sprintf("no rooms of correct type: %s subject %s needs a %s room", subject.Kind, subject.Name, roomType)
	case d.TeacherConflict:
		return fmt.Sprintf("teacher unavailable in every slot: %s is already teaching at every free period; reassign or reduce the load", subject.Teacher)
	case d.SemesterConflict:
		return fmt.Sprintf("semester fully occupied: %s has no free period left; reduce weekly hours", subject.Semester)
	case d.RoomConflict:
		return "all rooms occupied: add rooms or reduce weekly hours"
	}

	return fmt.Sprintf("multiple constraints (room type: %d, teacher: %d, semester: %d, room: %d)",
		d.RoomTypeMismatch, d.TeacherConflict, d.SemesterConflict, d.RoomConflict)
}
