package services

import (
	"github.com/samber/lo"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

// ComputeStats summarises a scheduling outcome for display
func ComputeStats(subjects []scheduler.Subject, rooms []scheduler.Room, outcome *scheduler.ScheduleOutcome) db.Stats {
	teachers := lo.Uniq(lo.Map(subjects, func(s scheduler.Subject, _ int) string {
		return s.Teacher
	}))
	usedRooms := lo.Uniq(lo.Map(outcome.Assignments, func(a scheduler.Assignment, _ int) string {
		return a.Slot.Room
	}))
	subjectConflicts := lo.Filter(outcome.Conflicts, func(c scheduler.Conflict, _ int) bool {
		return c.Subject != scheduler.OverflowConflictName
	})
	unscheduled := lo.SumBy(subjectConflicts, func(c scheduler.Conflict) int {
		return c.UnscheduledHours
	})

	return db.Stats{
		TotalSubjects:    len(lo.UniqBy(subjects, scheduler.Subject.Key)),
		TotalTeachers:    len(teachers),
		RoomsUtilized:    len(usedRooms),
		TotalSlots:       len(outcome.Assignments),
		Capacity:         scheduler.NewGrid(rooms).Capacity(),
		UnscheduledHours: unscheduled,
		MorningUsage:     outcome.MorningUsage,
	}
}
