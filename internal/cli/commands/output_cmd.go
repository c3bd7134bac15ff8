package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// DefaultOutputLimit is the number of rows `alfa output` prints by default.
const DefaultOutputLimit = 20

// NewOutputCommand creates the output command.
func NewOutputCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "output <run>",
		Short: "Print a run's output table",
		Long: `Load the tab-delimited output table of a run and print it.

The subtotal output is preferred when a run has both a subtotal and a
total file. Use --limit 0 to print every row.`,
		Example: `  alfa output 001
  alfa output 001 --limit 0
  alfa output 001 --output json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRuns,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutput(NewCommandContext(cmd), args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultOutputLimit, "Maximum rows to print (0 for all)")

	return cmd
}

func runOutput(cmdCtx *CommandContext, id string, limit int) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	run, err := model.RunWithOutput(id)
	if err != nil {
		return err
	}
	table, err := run.Output()
	if err != nil {
		return err
	}

	rows := table.Rows
	truncated := limit > 0 && len(rows) > limit
	if truncated {
		rows = rows[:limit]
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.TableOutput{
			Run:       run.ID(),
			Path:      table.Path,
			Columns:   table.Columns,
			Rows:      rows,
			TotalRows: table.Len(),
			Truncated: truncated,
		})
	default:
		r.Header(1, fmt.Sprintf("Output of run %s", run.ID()))
		r.KeyValue("File", table.Path)
		r.Println("")
		r.Table(table.Columns, tableCells(table.Columns, rows))
		if truncated {
			r.Println("")
			r.Muted(fmt.Sprintf("Showing %d of %d rows", len(rows), table.Len()))
		}
		return nil
	}
}

func tableCells(cols []string, rows []alfa.Row) [][]string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(cols))
		for j, col := range cols {
			line[j] = row[col]
		}
		cells[i] = line
	}
	return cells
}
