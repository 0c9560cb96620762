package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

// printSessionSummary shows the outcome of a run: stats, morning usage and any conflicts
func printSessionSummary(session *db.Session) {
	fmt.Printf("\n✅ Timetable generated\n\n")
	fmt.Printf("Session ID:     %s\n", session.ID)
	fmt.Printf("Dataset:        %s\n", session.DatasetFilename)
	fmt.Printf("Morning weight: %.1f\n", session.MorningWeight)

	if stats := session.Stats; stats != nil {
		fmt.Printf("Subjects:       %d\n", stats.TotalSubjects)
		fmt.Printf("Teachers:       %d\n", stats.TotalTeachers)
		fmt.Printf("Rooms used:     %d of %d\n", stats.RoomsUtilized, len(session.Rooms))
		fmt.Printf("Hours placed:   %d of %d slots\n", stats.TotalSlots, stats.Capacity)
		fmt.Println()
		fmt.Printf("🌅 Morning usage: %s\n", formatMorningUsage(stats.MorningUsage))
	}

	for _, w := range session.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}

	printConflicts(session.Conflicts)
}

func formatMorningUsage(usage [scheduler.Days]int) string {
	parts := make([]string, 0, scheduler.Days)
	for day, count := range usage {
		parts = append(parts, fmt.Sprintf("%s %d", scheduler.DayNames[day][:3], count))
	}
	return strings.Join(parts, ", ")
}

func printConflicts(conflicts []scheduler.Conflict) {
	if len(conflicts) == 0 {
		fmt.Printf("\nAll required hours were scheduled.\n\n")
		return
	}

	fmt.Printf("\n❌ Unscheduled hours:\n\n")
	fmt.Printf("%-25s  %-10s  %-6s  %s\n", "Subject", "Semester", "Hours", "Suggestion")
	fmt.Println("-------------------------  ----------  ------  ----------------------------------------")
	for _, c := range conflicts {
		subject := c.Subject
		if subject == scheduler.OverflowConflictName {
			subject = "(total capacity)"
		}
		fmt.Printf("%-25s  %-10s  %-6d  %s\n", subject, c.Semester, c.UnscheduledHours, c.Suggestion)
	}
	fmt.Println()
}

// printSessionsTable lists session summaries, newest first
func printSessionsTable(sessions []db.Session) {
	if len(sessions) == 0 {
		fmt.Printf("\nNo sessions found.\n\n")
		return
	}

	fmt.Printf("\n📅 Sessions:\n\n")
	fmt.Printf("%-36s  %-10s  %-19s  %-20s  %s\n", "ID", "Status", "Created", "Dataset", "Hours")
	fmt.Println("------------------------------------  ----------  -------------------  --------------------  -----")
	for _, s := range sessions {
		fmt.Printf("%-36s  %-10s  %-19s  %-20s  %s\n",
			s.ID, s.Status, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.DatasetFilename, sessionHours(s))
	}
	fmt.Println()
}

func sessionHours(s db.Session) string {
	if s.Stats == nil {
		return "-"
	}
	return fmt.Sprintf("%d", s.Stats.TotalSlots)
}

// printTimetableGrid prints one weekly grid per semester
func printTimetableGrid(assignments []scheduler.Assignment) {
	bySemester := make(map[string][]scheduler.Assignment)
	var semesters []string
	for _, a := range assignments {
		if _, ok := bySemester[a.Subject.Semester]; !ok {
			semesters = append(semesters, a.Subject.Semester)
		}
		bySemester[a.Subject.Semester] = append(bySemester[a.Subject.Semester], a)
	}
	slices.SortFunc(semesters, scheduler.CompareSemesters)

	for _, semester := range semesters {
		fmt.Printf("\n📅 %s\n\n", semester)
		fmt.Printf("%-6s", "")
		for _, day := range scheduler.DayNames {
			fmt.Printf("  %-22s", day)
		}
		fmt.Println()

		var cells [scheduler.Days][scheduler.TimesPerDay]string
		for _, a := range bySemester[semester] {
			cell := fmt.Sprintf("%s @%s", a.Subject.Name, a.Slot.Room)
			if existing := cells[a.Slot.Day][a.Slot.Time]; existing != "" {
				cell = existing + ", " + cell
			}
			cells[a.Slot.Day][a.Slot.Time] = cell
		}

		for t := 0; t < scheduler.TimesPerDay; t++ {
			fmt.Printf("%-6s", scheduler.TimeLabels[t])
			for d := 0; d < scheduler.Days; d++ {
				fmt.Printf("  %-22s", truncate(cells[d][t], 22))
			}
			fmt.Println()
		}
	}
	fmt.Println()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
