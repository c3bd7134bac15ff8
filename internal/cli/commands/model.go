package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// NewModelCommand creates the model command.
func NewModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Resolve the model file and summarize its directory",
		Long: `Resolve the configured model path to a single model file and report
its name, directory, lock state and how many tables and runs sit next to it.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Summarize the model in the current directory
  alfa model

  # Summarize a specific model file
  alfa model -m ./models/Pricing.ain2

  # As JSON
  alfa model --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runModel(NewCommandContext(cmd))
		},
	}

	return cmd
}

func runModel(cmdCtx *CommandContext) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	info, err := describeModel(model)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	default:
		r.Header(1, "Model "+info.Name)
		r.KeyValue("Path", info.Path)
		r.KeyValue("Directory", info.Dir)
		r.KeyValue("Locked", strconv.FormatBool(info.Locked))
		r.KeyValue("Tables", strconv.Itoa(info.TableCount))
		r.KeyValue("Runs", strconv.Itoa(info.RunCount))
		if info.ValuationDate != "" {
			r.KeyValue("Valuation date", info.ValuationDate)
		}
		return nil
	}
}

func describeModel(model *alfa.Model) (output.ModelOutput, error) {
	tables, err := model.Tables()
	if err != nil {
		return output.ModelOutput{}, err
	}
	runs, err := model.DistinctRuns()
	if err != nil {
		return output.ModelOutput{}, err
	}
	return output.ModelOutput{
		Path:          model.Path(),
		Dir:           model.Dir(),
		Name:          model.Name(),
		Filename:      model.Filename(),
		Locked:        model.Locked(),
		LockPath:      model.LockPath(),
		TableCount:    len(tables),
		RunCount:      len(runs),
		ValuationDate: model.ValuationDate(),
	}, nil
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the table files in the model directory",
		Long: `List the table files stored next to the model file, in directory order.
The table extension is matched without regard to case.`,
		Example: `  alfa tables
  alfa tables --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(NewCommandContext(cmd))
		},
	}

	return cmd
}

func runTables(cmdCtx *CommandContext) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	tables, err := model.Tables()
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.TablesOutput{Model: model.Name(), Tables: tables})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Tables (%d total)", len(tables))))
		r.Println("")
		if len(tables) > 0 {
			r.Println(output.FormatList(tables))
		}
		return nil
	default:
		r.Header(1, fmt.Sprintf("Tables (%d total)", len(tables)))
		for _, name := range tables {
			r.StatusLine(name, "info", "")
		}
		return nil
	}
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List the run identifiers recorded under the model",
		Long: `List the run identifiers found from metadata sidecar file names.

By default every identifier is listed once. Use --all to list one entry per
matching file, which shows identifiers that have more than one sidecar.`,
		Example: `  alfa runs
  alfa runs --all
  alfa runs --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(NewCommandContext(cmd), all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List one entry per metadata file, keeping repeats")

	return cmd
}

func runRuns(cmdCtx *CommandContext, all bool) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}

	var runs []string
	if all {
		runs, err = model.Runs()
	} else {
		runs, err = model.DistinctRuns()
	}
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.RunsOutput{Model: model.Name(), Runs: runs})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Runs (%d total)", len(runs))))
		r.Println("")
		if len(runs) > 0 {
			r.Println(output.FormatList(runs))
		}
		return nil
	default:
		r.Header(1, fmt.Sprintf("Runs (%d total)", len(runs)))
		for _, id := range runs {
			r.StatusLine(id, "info", "")
		}
		return nil
	}
}

// NewLockedCommand creates the locked command.
func NewLockedCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "locked",
		Short: "Report whether the model is locked",
		Long: `Report whether the advisory lock marker sits next to the model file.

With --quiet nothing is printed and the exit status tells the state:
0 when unlocked, 1 when locked.`,
		Example: `  alfa locked
  alfa locked --quiet && echo "safe to edit"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocked(NewCommandContext(cmd), quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print nothing; exit with status 1 when locked")

	return cmd
}

// ErrModelLocked is returned by `locked --quiet` when the lock marker exists.
var ErrModelLocked = errors.New("model is locked")

func runLocked(cmdCtx *CommandContext, quiet bool) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	locked := model.Locked()

	if quiet {
		if locked {
			return ErrModelLocked
		}
		return nil
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.LockOutput{Model: model.Name(), Locked: locked, LockPath: model.LockPath()})
	default:
		r.KeyValue("Locked", strconv.FormatBool(locked))
		r.KeyValue("Lock file", model.LockPath())
		return nil
	}
}
