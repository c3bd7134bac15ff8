package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/state"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var (
		limit int
		runs  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show catalog scans or indexed runs",
		Long: `Show the scans recorded by 'alfa index', most recent first.

With --runs the runs indexed for the configured model are listed instead.`,
		Example: `  alfa history
  alfa history --limit 5
  alfa history --runs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			if runs {
				return runHistoryRuns(cmd.Context(), cmdCtx)
			}
			return runHistory(cmd.Context(), cmdCtx, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum scans to show (0 for all)")
	cmd.Flags().BoolVar(&runs, "runs", false, "List the indexed runs of the model")

	return cmd
}

func runHistory(ctx context.Context, cmdCtx *CommandContext, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, cleanup, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	scans, err := store.ListScans(ctx, limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		infos := make([]output.ScanInfo, len(scans))
		for i, s := range scans {
			infos[i] = output.ScanInfo{
				ID:        s.ID,
				Model:     s.ModelName,
				ModelPath: s.ModelPath,
				RunCount:  s.RunCount,
				StartedAt: s.StartedAt,
			}
		}
		return r.JSON(output.HistoryOutput{Scans: infos})
	default:
		r.Header(1, fmt.Sprintf("Scans (%d)", len(scans)))
		rows := make([][]string, len(scans))
		for i, s := range scans {
			rows[i] = []string{
				s.StartedAt.Local().Format(time.DateTime),
				s.ModelName,
				strconv.Itoa(s.RunCount),
				s.ID,
			}
		}
		r.Table([]string{"Started", "Model", "Runs", "Scan"}, rows)
		return nil
	}
}

func runHistoryRuns(ctx context.Context, cmdCtx *CommandContext) error {
	if ctx == nil {
		ctx = context.Background()
	}
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	store, cleanup, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := store.ListRuns(ctx, model.Path())
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []state.IndexedRun{}
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(runs)
	default:
		r.Header(1, fmt.Sprintf("Indexed runs of %s (%d)", model.Name(), len(runs)))
		rows := make([][]string, len(runs))
		for i, run := range runs {
			rows[i] = []string{run.FileID, run.RunID, run.Description, run.ValuationDate, run.IndexedAt.Local().Format(time.DateTime)}
		}
		r.Table([]string{"File", "Run", "Description", "Valuation date", "Indexed"}, rows)
		return nil
	}
}
