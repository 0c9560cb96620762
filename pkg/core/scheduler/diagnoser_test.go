package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnose_RoomTypeOnly(t *testing.T) {
	state := stateWith([]Room{{Name: "Classroom1"}, {Name: "Classroom2"}})
	subject := lab("ChemLab", "Sem1", "T1", 2, 2)

	d := Diagnose(subject, state)

	assert.Equal(t, 60, d.SlotsChecked)
	assert.Equal(t, 60, d.RoomTypeMismatch)
	assert.Equal(t, "no rooms of correct type: Lab subject ChemLab needs a lab-capable room", d.Suggestion(subject))
}

func TestDiagnose_SemesterFullyOccupied(t *testing.T) {
	rooms := []Room{{Name: "R1"}, {Name: "R2"}}
	state := stateWith(rooms)
	other := theory("Art", "Sem1", "T2", 3, 30)
	for _, slot := range state.Grid.Slots() {
		if slot.Room == "R1" {
			state.commit(other, slot)
		}
	}
	subject := theory("Math", "Sem1", "T1", 3, 1)

	d := Diagnose(subject, state)

	assert.Equal(t, 60, d.SemesterConflict)
	assert.Equal(t, "semester fully occupied: Sem1 has no free period left; reduce weekly hours", d.Suggestion(subject))
}

func TestDiagnose_AllRoomsOccupied(t *testing.T) {
	state := stateWith([]Room{{Name: "R1"}})
	other := theory("Art", "Sem2", "T2", 3, 30)
	for _, slot := range state.Grid.Slots() {
		state.commit(other, slot)
	}
	subject := theory("Math", "Sem1", "T1", 3, 1)

	d := Diagnose(subject, state)

	assert.Equal(t, 30, d.RoomConflict)
	assert.Contains(t, d.Suggestion(subject), "all rooms occupied")
}

func TestDiagnose_TeacherUnavailable(t *testing.T) {
	state := stateWith([]Room{{Name: "R1"}, {Name: "R2"}})
	other := theory("Art", "Sem2", "T1", 3, 30)
	for _, slot := range state.Grid.Slots() {
		if slot.Room == "R1" {
			state.commit(other, slot)
		}
	}
	subject := theory("Math", "Sem1", "T1", 3, 1)

	d := Diagnose(subject, state)

	assert.Equal(t, 60, d.TeacherConflict)
	assert.Contains(t, d.Suggestion(subject), "teacher unavailable in every slot: T1")
}

func TestDiagnose_MixedCauses(t *testing.T) {
	state := stateWith([]Room{{Name: "R1"}, {Name: "Lab1", IsLab: true}})
	other := theory("Art", "Sem2", "T2", 3, 30)
	for _, slot := range state.Grid.Slots() {
		if slot.Room == "R1" {
			state.commit(other, slot)
		}
	}
	subject := theory("Math", "Sem1", "T1", 3, 1)

	d := Diagnose(subject, state)

	assert.Equal(t, 30, d.RoomTypeMismatch)
	assert.Equal(t, 30, d.RoomConflict)
	assert.Equal(t, "multiple constraints (room type: 30, teacher: 0, semester: 0, room: 30)", d.Suggestion(subject))
}

func TestDiagnose_NoRooms(t *testing.T) {
	state := stateWith(nil)
	subject := theory("Math", "Sem1", "T1", 3, 1)

	d := Diagnose(subject, state)

	assert.Zero(t, d.SlotsChecked)
	assert.Equal(t, "no rooms configured: add rooms to the resource file", d.Suggestion(subject))
}

func TestDiagnose_ReadOnly(t *testing.T) {
	state := stateWith([]Room{{Name: "R1"}},
		Assignment{Subject: theory("Art", "Sem2", "T2", 3, 1), Slot: Slot{Day: 0, Time: 0, Room: "R1"}},
	)

	Diagnose(theory("Math", "Sem1", "T1", 3, 1), state)

	assert.Len(t, state.Assignments, 1)
	assert.Equal(t, [Days]int{1, 0, 0, 0, 0}, state.MorningUsage)
}
