package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

func TestComputeStats(t *testing.T) {
	math := scheduler.Subject{Name: "Math", Semester: "Sem1", Credits: 3, Kind: scheduler.KindTheory, Teacher: "T1", HoursNeeded: 2}
	physics := scheduler.Subject{Name: "Physics", Semester: "Sem1", Credits: 3, Kind: scheduler.KindTheory, Teacher: "T1", HoursNeeded: 1}
	lab := scheduler.Subject{Name: "ChemLab", Semester: "Sem2", Credits: 2, Kind: scheduler.KindLab, Teacher: "T2", HoursNeeded: 3}
	rooms := []scheduler.Room{{Name: "R1"}, {Name: "R2"}, {Name: "Lab1", IsLab: true}}

	outcome := &scheduler.ScheduleOutcome{
		Assignments: []scheduler.Assignment{
			{Subject: math, Slot: scheduler.Slot{Day: 0, Time: 0, Room: "R1"}},
			{Subject: math, Slot: scheduler.Slot{Day: 1, Time: 0, Room: "R1"}},
			{Subject: physics, Slot: scheduler.Slot{Day: 2, Time: 4, Room: "R2"}},
		},
		Conflicts: []scheduler.Conflict{
			{Subject: scheduler.OverflowConflictName, UnscheduledHours: 40},
			{Subject: "ChemLab", Semester: "Sem2", UnscheduledHours: 3},
		},
		MorningUsage: [scheduler.Days]int{1, 1, 0, 0, 0},
	}

	stats := ComputeStats([]scheduler.Subject{math, physics, lab}, rooms, outcome)

	assert.Equal(t, 3, stats.TotalSubjects)
	assert.Equal(t, 2, stats.TotalTeachers)
	assert.Equal(t, 2, stats.RoomsUtilized)
	assert.Equal(t, 3, stats.TotalSlots)
	assert.Equal(t, 90, stats.Capacity)
	assert.Equal(t, 3, stats.UnscheduledHours, "overflow warning is not counted")
	assert.Equal(t, [scheduler.Days]int{1, 1, 0, 0, 0}, stats.MorningUsage)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil, &scheduler.ScheduleOutcome{})

	assert.Zero(t, stats.TotalSubjects)
	assert.Zero(t, stats.RoomsUtilized)
	assert.Zero(t, stats.Capacity)
	assert.Zero(t, stats.UnscheduledHours)
}
