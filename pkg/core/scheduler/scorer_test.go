package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_MorningBonus(t *testing.T) {
	state := stateWith(DefaultRooms())
	subject := theory("Math", "Sem1", "T1", 3, 3)
	weights := DefaultScoreWeights(5)

	assert.Equal(t, 5.0, Score(subject, Slot{Day: 0, Time: 0, Room: "Classroom1"}, state, weights))
	assert.Equal(t, 5.0, Score(subject, Slot{Day: 0, Time: 2, Room: "Classroom1"}, state, weights))
	assert.Equal(t, 0.0, Score(subject, Slot{Day: 0, Time: 3, Room: "Classroom1"}, state, weights))
}

func TestScore_DistributionPenalty(t *testing.T) {
	state := stateWith(DefaultRooms(),
		Assignment{Subject: theory("Art", "Sem2", "T2", 3, 3), Slot: Slot{Day: 1, Time: 0, Room: "Classroom1"}},
		Assignment{Subject: theory("Music", "Sem3", "T3", 3, 3), Slot: Slot{Day: 1, Time: 1, Room: "Classroom1"}},
	)
	subject := theory("Math", "Sem1", "T1", 3, 3)
	weights := DefaultScoreWeights(5)

	// Two mornings already used on Tuesday: 5 - 2*2
	assert.Equal(t, 1.0, Score(subject, Slot{Day: 1, Time: 2, Room: "Classroom2"}, state, weights))
	// Afternoons are not penalised
	assert.Equal(t, 0.0, Score(subject, Slot{Day: 1, Time: 4, Room: "Classroom2"}, state, weights))
	// Other days are unaffected
	assert.Equal(t, 5.0, Score(subject, Slot{Day: 2, Time: 0, Room: "Classroom2"}, state, weights))
}

func TestScore_LabBlockBonus(t *testing.T) {
	state := stateWith(DefaultRooms(),
		Assignment{Subject: lab("BioLab", "Sem2", "T2", 2, 2), Slot: Slot{Day: 0, Time: 4, Room: "Lab1"}},
	)
	subject := lab("ChemLab", "Sem1", "T1", 2, 2)
	weights := DefaultScoreWeights(5)

	assert.Equal(t, 3.0, Score(subject, Slot{Day: 0, Time: 4, Room: "Lab2"}, state, weights), "next period free")
	assert.Equal(t, 0.0, Score(subject, Slot{Day: 0, Time: 3, Room: "Lab1"}, state, weights), "next period taken")
	assert.Equal(t, 0.0, Score(subject, Slot{Day: 0, Time: TimesPerDay - 1, Room: "Lab2"}, state, weights), "last period has no successor")
	assert.Equal(t, 8.0, Score(subject, Slot{Day: 1, Time: 0, Room: "Lab1"}, state, weights))
}

func TestScore_TheoryGetsNoLabBonus(t *testing.T) {
	state := stateWith(DefaultRooms())
	subject := theory("Math", "Sem1", "T1", 3, 3)

	assert.Equal(t, 0.0, Score(subject, Slot{Day: 0, Time: 4, Room: "Classroom1"}, state, DefaultScoreWeights(5)))
}

func TestScore_CustomWeights(t *testing.T) {
	state := stateWith(DefaultRooms(),
		Assignment{Subject: theory("Art", "Sem2", "T2", 3, 3), Slot: Slot{Day: 0, Time: 0, Room: "Classroom1"}},
	)
	weights := ScoreWeights{MorningWeight: 10, DistributionPenalty: 4, LabBlockBonus: 1}

	assert.Equal(t, 6.0, Score(theory("Math", "Sem1", "T1", 3, 3), Slot{Day: 0, Time: 1, Room: "Classroom2"}, state, weights))
	assert.Equal(t, 11.0, Score(lab("ChemLab", "Sem1", "T1", 2, 2), Slot{Day: 1, Time: 1, Room: "Lab1"}, state, weights))
}
