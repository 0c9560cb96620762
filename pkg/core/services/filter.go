package services

import (
	"github.com/samber/lo"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

// Filter narrows a timetable view. Empty fields match everything.
type Filter struct {
	Semester string `form:"semester"`
	Teacher  string `form:"teacher"`
	Room     string `form:"room"`
}

// IsEmpty reports whether the filter matches everything
func (f Filter) IsEmpty() bool {
	return f.Semester == "" && f.Teacher == "" && f.Room == ""
}

// FilterAssignments returns the assignments matching every set field, in their original order
func FilterAssignments(assignments []scheduler.Assignment, filter Filter) []scheduler.Assignment {
	if filter.IsEmpty() {
		return assignments
	}
	return lo.Filter(assignments, func(a scheduler.Assignment, _ int) bool {
		return (filter.Semester == "" || a.Subject.Semester == filter.Semester) &&
			(filter.Teacher == "" || a.Subject.Teacher == filter.Teacher) &&
			(filter.Room == "" || a.Slot.Room == filter.Room)
	})
}
