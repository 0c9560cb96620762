package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/timetable-scheduler/internal/config"
	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/timetable-scheduler/pkg/core/services"
	"github.com/jakechorley/timetable-scheduler/pkg/db"
	"github.com/jakechorley/timetable-scheduler/pkg/export"
	"github.com/jakechorley/timetable-scheduler/pkg/loader"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <dataset.csv> <config.csv>",
		Short: "Generate a weekly timetable from a subjects dataset and a rooms config",
		Long: `Generate a weekly timetable from a subjects dataset and a rooms config.

The dataset CSV has the header name,semester,credits,type,teacher,hours_needed.
The config CSV has the header resource_type,value with one "room" row per room.
Rooms whose name contains the configured lab marker are lab-capable.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			morningWeight := app.Cfg.MorningWeight
			if cmd.Flags().Changed("morning-weight") {
				morningWeight, _ = cmd.Flags().GetFloat64("morning-weight")
			}
			if err := checkMorningWeight(app.Logger, morningWeight); err != nil {
				return err
			}

			outputs := generateOutputs{}
			outputs.timetable, _ = cmd.Flags().GetString("out")
			outputs.heatmap, _ = cmd.Flags().GetString("heatmap")
			outputs.conflicts, _ = cmd.Flags().GetString("conflicts")
			outputs.pdf, _ = cmd.Flags().GetString("pdf")
			outputs.csv, _ = cmd.Flags().GetString("csv")

			app.Logger.Debug("generate command",
				zap.String("dataset", args[0]),
				zap.String("config", args[1]),
				zap.Float64("morning_weight", morningWeight))

			session, err := runGenerate(app, args[0], args[1], morningWeight)
			if err != nil {
				return err
			}

			if err := writeOutputs(session, outputs); err != nil {
				return err
			}

			printSessionSummary(session)
			fmt.Printf("📄 Timetable written to %s\n\n", outputs.timetable)

			return nil
		},
	}

	cmd.Flags().Float64("morning-weight", scheduler.DefaultMorningWeight, "Preference for morning slots (recommended 0-20)")
	cmd.Flags().String("out", "timetable.json", "Timetable JSON output file")
	cmd.Flags().String("heatmap", "", "Write candidate slot scores as JSON to this file")
	cmd.Flags().String("conflicts", "", "Write unscheduled hours as JSON to this file")
	cmd.Flags().String("pdf", "", "Write a per-semester PDF timetable to this file")
	cmd.Flags().String("csv", "", "Write the timetable as CSV to this file")

	return cmd
}

// checkMorningWeight rejects weights the scorer cannot order by and warns when the weight
// is outside the recommended range
func checkMorningWeight(logger *zap.Logger, morningWeight float64) error {
	if !config.IsFiniteMorningWeight(morningWeight) {
		return fmt.Errorf("morning weight must be a finite number, got %v", morningWeight)
	}
	if !config.MorningWeightInRange(morningWeight) {
		logger.Warn("Morning weight is outside the recommended range",
			zap.Float64("morning_weight", morningWeight),
			zap.Float64("min", 0),
			zap.Float64("max", config.MaxMorningWeight))
	}
	return nil
}

type generateOutputs struct {
	timetable string
	heatmap   string
	conflicts string
	pdf       string
	csv       string
}

// runGenerate loads both CSVs and runs a scheduling session.
// A failed session is returned as an error carrying the failure message.
func runGenerate(app *AppContext, datasetPath, configPath string, morningWeight float64) (*db.Session, error) {
	subjects, subjectWarnings, err := loader.LoadSubjectsFile(datasetPath)
	if err != nil {
		return nil, err
	}
	logRowWarnings(app.Logger, datasetPath, subjectWarnings)
	if len(subjects) == 0 {
		app.Logger.Warn("No subjects loaded", zap.String("file", datasetPath))
	}

	rooms, roomWarnings, err := loader.LoadRoomsFile(configPath, app.Cfg.LabRoomMarker, app.Cfg.Rooms())
	if err != nil {
		return nil, err
	}
	logRowWarnings(app.Logger, configPath, roomWarnings)

	app.Logger.Info("Loaded inputs",
		zap.Int("subjects", len(subjects)),
		zap.Int("rooms", len(rooms)),
		zap.Int("lab_rooms", countLabRooms(rooms)))

	session, err := services.GenerateTimetable(app.Ctx, app.Store, app.Cache, app.Metrics, app.Logger, services.GenerateInput{
		DatasetFilename: filepath.Base(datasetPath),
		ConfigFilename:  filepath.Base(configPath),
		Subjects:        subjects,
		Rooms:           rooms,
		MorningWeight:   morningWeight,
		Warnings:        rowWarningMessages(subjectWarnings, roomWarnings),
	})
	if errors.Is(err, services.ErrGenerationFailed) {
		return nil, fmt.Errorf("session %s failed: %w", session.ID, err)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// writeOutputs writes the timetable JSON and any optional exports that were requested
func writeOutputs(session *db.Session, outputs generateOutputs) error {
	writers := []struct {
		path  string
		write func(w io.Writer) error
	}{
		{outputs.timetable, func(w io.Writer) error {
			return export.WriteJSON(w, export.ToTimetable(session.Assignments))
		}},
		{outputs.heatmap, func(w io.Writer) error {
			return export.WriteJSON(w, export.ToHeatmap(session.Heatmap))
		}},
		{outputs.conflicts, func(w io.Writer) error {
			return export.WriteJSON(w, nonNilConflicts(session.Conflicts))
		}},
		{outputs.csv, func(w io.Writer) error {
			return export.WriteCSV(w, export.ToTimetable(session.Assignments))
		}},
	}

	for _, out := range writers {
		if out.path == "" {
			continue
		}
		if err := export.WriteFile(out.path, out.write); err != nil {
			return err
		}
	}

	if outputs.pdf != "" {
		pdf, err := export.NewPDFExporter().Render(session.Assignments, "Timetable "+session.DatasetFilename)
		if err != nil {
			return fmt.Errorf("failed to render pdf: %w", err)
		}
		if err := os.WriteFile(outputs.pdf, pdf, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputs.pdf, err)
		}
	}

	return nil
}

func logRowWarnings(logger *zap.Logger, file string, warnings []loader.RowError) {
	for _, w := range warnings {
		logger.Warn("Skipped row", zap.String("file", file), zap.Int("row", w.Row), zap.String("reason", w.Reason))
	}
}

func rowWarningMessages(groups ...[]loader.RowError) []string {
	var messages []string
	for _, group := range groups {
		for _, w := range group {
			messages = append(messages, w.Error())
		}
	}
	return messages
}

func countLabRooms(rooms []scheduler.Room) int {
	count := 0
	for _, r := range rooms {
		if r.IsLab {
			count++
		}
	}
	return count
}

func nonNilConflicts(conflicts []scheduler.Conflict) []scheduler.Conflict {
	if conflicts == nil {
		return []scheduler.Conflict{}
	}
	return conflicts
}
