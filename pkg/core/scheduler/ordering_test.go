package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(subjects []Subject) []string {
	result := make([]string, len(subjects))
	for i, s := range subjects {
		result[i] = s.Name
	}
	return result
}

func TestOrderSubjects_Priority(t *testing.T) {
	subjects := []Subject{
		theory("Zoology", "Sem1", "T1", 3, 3),
		theory("Math", "Sem1", "T2", 4, 3),
		lab("ChemLab", "Sem1", "T3", 1, 2),
		theory("Algebra", "Sem1", "T4", 3, 3),
		theory("Biology", "Sem2", "T5", 3, 3),
		lab("PhysLab", "Sem1", "T6", 2, 2),
	}

	ordered := OrderSubjects(subjects)

	assert.Equal(t, []string{"PhysLab", "ChemLab", "Math", "Biology", "Algebra", "Zoology"}, names(ordered))
}

func TestOrderSubjects_NaturalSemesterOrder(t *testing.T) {
	subjects := []Subject{
		theory("A", "Sem2", "T1", 3, 1),
		theory("B", "Sem10", "T2", 3, 1),
		theory("C", "Sem9", "T3", 3, 1),
	}

	assert.Equal(t, []string{"B", "C", "A"}, names(OrderSubjects(subjects)))
}

func TestOrderSubjects_SameNameDifferentSemester(t *testing.T) {
	subjects := []Subject{
		theory("Math", "Sem1", "T1", 3, 1),
		theory("Math", "Sem2", "T2", 3, 1),
	}

	ordered := OrderSubjects(subjects)
	assert.Equal(t, "Sem2", ordered[0].Semester)
	assert.Equal(t, "Sem1", ordered[1].Semester)
}

func TestOrderSubjects_DoesNotMutateInput(t *testing.T) {
	subjects := []Subject{
		theory("B", "Sem1", "T1", 3, 1),
		lab("A", "Sem1", "T2", 3, 1),
	}

	OrderSubjects(subjects)

	assert.Equal(t, []string{"B", "A"}, names(subjects))
}

func TestCompareSemesters(t *testing.T) {
	assert.Negative(t, CompareSemesters("Sem1", "Sem2"))
	assert.Positive(t, CompareSemesters("Sem10", "Sem2"))
	assert.Zero(t, CompareSemesters("Sem3", "Sem3"))
	assert.Negative(t, CompareSemesters("Autumn", "Spring"), "labels without numbers compare as strings")
	assert.Negative(t, CompareSemesters("S1-A", "S1-B"), "same number falls back to strings")
}
