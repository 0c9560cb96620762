package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
)

// SessionsCmd creates the sessions command
func SessionsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions [sessionID]",
		Short: "List scheduling sessions, or show one session's timetable",
		Long: `List scheduling sessions, newest first. With a session ID, show that session's
timetable grid, stats and conflicts. Filters apply to the timetable grid only.

With the memory store backend sessions only live for the current process, so use
this from the interactive shell or configure the postgres backend.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				sessions, err := app.Store.ListSessions(app.Ctx)
				if err != nil {
					return fmt.Errorf("failed to list sessions: %w", err)
				}
				printSessionsTable(sessions)
				return nil
			}

			filter := services.Filter{}
			filter.Semester, _ = cmd.Flags().GetString("semester")
			filter.Teacher, _ = cmd.Flags().GetString("teacher")
			filter.Room, _ = cmd.Flags().GetString("room")

			app.Logger.Debug("sessions command", zap.String("session_id", args[0]))

			session, err := app.Store.GetSession(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch session: %w", err)
			}

			if session.Status != db.StatusCompleted {
				fmt.Printf("\nSession %s is %s\n", session.ID, session.Status)
				if session.ErrorMessage != "" {
					fmt.Printf("Error: %s\n", session.ErrorMessage)
				}
				fmt.Println()
				return nil
			}

			printTimetableGrid(services.FilterAssignments(session.Assignments, filter))
			printSessionSummary(session)
			if session.PublishedAt != nil {
				fmt.Printf("Published: %s\n\n", session.PublishedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("semester", "", "Only show this semester")
	cmd.Flags().String("teacher", "", "Only show this teacher")
	cmd.Flags().String("room", "", "Only show this room")
}
