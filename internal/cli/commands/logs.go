package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
)

// NewLogsCommand creates the logs command.
func NewLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs <run>",
		Short: "List a run's log files",
		Long:  `List the log files written for a run, keyed by log name.`,
		Example: `  alfa logs 001
  alfa logs 001 --output json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRuns,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(NewCommandContext(cmd), args[0])
		},
	}

	return cmd
}

func runLogs(cmdCtx *CommandContext, id string) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	run, err := model.Run(id)
	if err != nil {
		return err
	}
	logs, err := run.Logs()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(logs))
	for name := range logs {
		names = append(names, name)
	}
	sort.Strings(names)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.LogsOutput{Run: run.ID(), Logs: logs})
	default:
		r.Header(1, fmt.Sprintf("Logs of run %s (%d)", run.ID(), len(logs)))
		rows := make([][]string, len(names))
		for i, name := range names {
			rows[i] = []string{name, logs[name]}
		}
		r.Table([]string{"Name", "File"}, rows)
		return nil
	}
}
