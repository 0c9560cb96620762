package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/export"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar <sessionID>",
		Short: "Expand a weekly timetable into dated sessions for the configured term",
		Long: `Expand a completed session's weekly timetable into dated sessions between
term.start and term.end, skipping dates matched by the term.closures rules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := services.Filter{}
			filter.Semester, _ = cmd.Flags().GetString("semester")
			filter.Teacher, _ = cmd.Flags().GetString("teacher")
			filter.Room, _ = cmd.Flags().GetString("room")
			out, _ := cmd.Flags().GetString("out")

			app.Logger.Debug("calendar command", zap.String("session_id", args[0]), zap.String("out", out))

			occurrences, err := services.TermCalendar(app.Ctx, app.Store, app.Cfg, app.Logger, args[0], filter)
			if err != nil {
				return err
			}

			if out != "" {
				if err := export.WriteFile(out, func(w io.Writer) error {
					return export.WriteOccurrencesCSV(w, occurrences)
				}); err != nil {
					return err
				}
				fmt.Printf("\n✅ Wrote %d sessions (%s to %s) to %s\n\n", len(occurrences), app.Cfg.Term.Start, app.Cfg.Term.End, out)
				return nil
			}

			fmt.Printf("\n📅 Term %s to %s: %d sessions\n\n", app.Cfg.Term.Start, app.Cfg.Term.End, len(occurrences))
			fmt.Printf("%-10s  %-9s  %-11s  %-25s  %-8s  %-20s  %s\n", "Date", "Day", "Time", "Subject", "Semester", "Teacher", "Room")
			fmt.Println("----------  ---------  -----------  -------------------------  --------  --------------------  ----------")
			for _, o := range occurrences {
				fmt.Printf("%-10s  %-9s  %s-%s  %-25s  %-8s  %-20s  %s\n",
					o.Date, o.Day, o.Start, o.End, o.Subject, o.Semester, o.Teacher, o.Room)
			}
			fmt.Println()

			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("out", "", "Write the sessions as CSV to this file instead of printing them")

	return cmd
}
