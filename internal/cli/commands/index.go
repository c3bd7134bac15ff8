package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/state"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// NewIndexCommand creates the index command.
func NewIndexCommand() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Resolve every run and record it in the catalog",
		Long: `Resolve every run of the model concurrently and store the results in the
local run catalog (state_path in alfa.yaml, default .alfa/catalog.db).

Runs that fail to resolve are reported and left out of the catalog; the
remaining runs are still recorded.`,
		Example: `  alfa index
  alfa index --jobs 8
  alfa index --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			if cmd.Flags().Changed("jobs") {
				cmdCtx.Cfg.Jobs = jobs
			}
			return runIndex(cmd.Context(), cmdCtx)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Runs to resolve in parallel (default from config)")

	return cmd
}

func runIndex(ctx context.Context, cmdCtx *CommandContext) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	store, cleanup, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	resolved, failures, err := resolveRuns(ctx, model, cmdCtx.Cfg.Jobs)
	if err != nil {
		return err
	}
	for _, f := range failures {
		cmdCtx.Logger.Warn("skipping run", "run", f.Run, "error", f.Error)
	}

	runs := make([]state.IndexedRun, 0, len(resolved))
	indexed := make([]string, 0, len(resolved))
	for _, run := range resolved {
		runs = append(runs, state.NewIndexedRun(model.Path(), run))
		indexed = append(indexed, run.FileID())
	}

	scan, err := store.SaveScan(ctx, model.Path(), model.Name(), runs)
	if err != nil {
		return err
	}

	result := output.IndexOutput{
		ScanID:    scan.ID,
		Model:     model.Name(),
		Indexed:   indexed,
		Failed:    failures,
		StatePath: cmdCtx.Cfg.StatePath,
		Duration:  time.Since(start).Round(time.Millisecond).String(),
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Index"))
		r.Println("")
		r.Println(output.FormatKeyValue("Model", result.Model))
		r.Println(output.FormatKeyValue("Indexed", fmt.Sprintf("%d runs", len(result.Indexed))))
		r.Println(output.FormatKeyValue("Failed", fmt.Sprintf("%d runs", len(result.Failed))))
		r.Println(output.FormatKeyValue("Catalog", result.StatePath))
		for _, f := range result.Failed {
			r.Println(output.FormatKeyValue("Run "+f.Run, f.Error))
		}
		return nil
	default:
		for _, id := range result.Indexed {
			r.StatusLine(id, "success", "")
		}
		for _, f := range result.Failed {
			r.StatusLine(f.Run, "error", f.Error)
		}
		r.Println("")
		r.Success(fmt.Sprintf("Indexed %d runs of %s in %s", len(result.Indexed), result.Model, result.Duration))
		return nil
	}
}

// resolveRuns resolves every distinct run of model with at most jobs
// resolutions in flight. Results keep directory order. A run that fails to
// resolve is reported in failures rather than stopping the others.
func resolveRuns(ctx context.Context, model *alfa.Model, jobs int) ([]*alfa.Run, []output.RunFailure, error) {
	ids, err := model.DistinctRuns()
	if err != nil {
		return nil, nil, err
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]*alfa.Run, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = model.Run(id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var runs []*alfa.Run
	failures := []output.RunFailure{}
	for i, id := range ids {
		if errs[i] != nil {
			failures = append(failures, output.RunFailure{Run: id, Error: errs[i].Error()})
			continue
		}
		runs = append(runs, results[i])
	}
	return runs, failures, nil
}
