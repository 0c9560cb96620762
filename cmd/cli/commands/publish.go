package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <sessionID>",
		Short: "Publish a session's timetable to Google Sheets",
		Long: `Publish a completed session's timetable to the configured spreadsheet
(sheets.spreadsheetID). The session gets its own tab holding one weekly grid per
semester; publishing again overwrites that tab.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("publish command", zap.String("session_id", args[0]))

			publisher, err := app.NewPublisher()
			if err != nil {
				return fmt.Errorf("failed to connect to Google Sheets: %w", err)
			}

			published, err := services.PublishTimetable(app.Ctx, app.Store, publisher, app.Cfg, app.Logger, args[0])
			if err != nil {
				return fmt.Errorf("failed to publish timetable: %w", err)
			}

			fmt.Printf("\n✅ Timetable Published Successfully\n\n")
			fmt.Printf("Session ID: %s\n", published.SessionID)
			fmt.Printf("Sheet ID:   %s\n", app.Cfg.Sheets.SpreadsheetID)
			fmt.Printf("Tab:        %s\n", published.TabTitle)
			fmt.Printf("Rows:       %d\n\n", len(published.Rows))

			return nil
		},
	}

	return cmd
}
