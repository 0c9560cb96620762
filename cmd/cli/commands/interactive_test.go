package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain words", line: "sessions abc", want: []string{"sessions", "abc"}},
		{name: "extra whitespace", line: "  generate   a.csv\tb.csv ", want: []string{"generate", "a.csv", "b.csv"}},
		{name: "double quotes", line: `generate "my data.csv" rooms.csv`, want: []string{"generate", "my data.csv", "rooms.csv"}},
		{name: "single quotes", line: `calendar abc --teacher 'Dr. Smith'`, want: []string{"calendar", "abc", "--teacher", "Dr. Smith"}},
		{name: "quote inside word", line: `--teacher=Dr."Who Smith"`, want: []string{"--teacher=Dr.Who Smith"}},
		{name: "empty quotes", line: `sessions ""`, want: []string{"sessions", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandLine_UnclosedQuote(t *testing.T) {
	_, err := parseCommandLine(`generate "my data.csv`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed quote")
}

func newRecordingCmd(calls *[][]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "record <arg>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, _ := cmd.Flags().GetString("room")
			*calls = append(*calls, append([]string{room}, args...))
			if args[0] == "boom" {
				return errors.New("boom")
			}
			return nil
		},
	}
	cmd.Flags().String("room", "any", "")
	return cmd
}

func TestRunCommand_ResetsFlagsBetweenRuns(t *testing.T) {
	var calls [][]string
	cmd := newRecordingCmd(&calls)

	require.NoError(t, runCommand(cmd, []string{"first", "--room", "Lab1"}))
	require.NoError(t, runCommand(cmd, []string{"second"}))

	assert.Equal(t, [][]string{{"Lab1", "first"}, {"any", "second"}}, calls)
}

func TestRunCommand_ValidatesArgs(t *testing.T) {
	var calls [][]string
	cmd := newRecordingCmd(&calls)

	err := runCommand(cmd, []string{})
	require.Error(t, err)
	assert.Empty(t, calls)

	err = runCommand(cmd, []string{"x", "--unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing flags")
}

func TestRunInteractive_RunsUntilExit(t *testing.T) {
	var calls [][]string
	commands := map[string]*cobra.Command{"record": newRecordingCmd(&calls)}

	input := strings.Join([]string{
		"record one",
		"",
		"unknown",
		"help",
		`record "two words" --room Lab2`,
		"record boom",
		"exit",
		"record never",
	}, "\n")

	require.NoError(t, runInteractive(strings.NewReader(input), commands))

	assert.Equal(t, [][]string{{"any", "one"}, {"Lab2", "two words"}, {"any", "boom"}}, calls)
}

func TestRunInteractive_EndOfInput(t *testing.T) {
	var calls [][]string
	commands := map[string]*cobra.Command{"record": newRecordingCmd(&calls)}

	require.NoError(t, runInteractive(strings.NewReader("record one"), commands))
	assert.Len(t, calls, 1)
}

func TestSiblingCommands_SkipsInteractive(t *testing.T) {
	root := &cobra.Command{Use: "cli"}
	interactive := InteractiveCmd(&AppContext{})
	root.AddCommand(interactive, &cobra.Command{Use: "generate"}, &cobra.Command{Use: "serve"})

	commands := siblingCommands(interactive)

	assert.Len(t, commands, 2)
	assert.Contains(t, commands, "generate")
	assert.Contains(t, commands, "serve")
	assert.NotContains(t, commands, "interactive")
}
