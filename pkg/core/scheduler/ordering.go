package scheduler

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// OrderSubjects returns the subjects in commit order without modifying the input:
// labs before theory, then higher credits, then later semester, then name ascending.
func OrderSubjects(subjects []Subject) []Subject {
	ordered := slices.Clone(subjects)
	slices.SortStableFunc(ordered, compareSubjects)
	return ordered
}

// compareSubjects returns a negative number when a must be scheduled before b
func compareSubjects(a, b Subject) int {
	if a.IsLab() != b.IsLab() {
		if a.IsLab() {
			return -1
		}
		return 1
	}

	if a.Credits != b.Credits {
		return b.Credits - a.Credits
	}

	if c := CompareSemesters(a.Semester, b.Semester); c != 0 {
		return -c
	}

	return strings.Compare(a.Name, b.Name)
}

// CompareSemesters orders semester labels naturally so that "Sem10" sorts after "Sem2".
// Labels without a number fall back to plain string comparison.
func CompareSemesters(a, b string) int {
	numA, okA := semesterNumber(a)
	numB, okB := semesterNumber(b)
	if okA && okB && numA != numB {
		if numA < numB {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// semesterNumber extracts the first run of digits in a semester label
func semesterNumber(label string) (int, bool) {
	start := strings.IndexFunc(label, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(label) && unicode.IsDigit(rune(label[end])) {
		end++
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
