package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run>",
		Short: "Show a run's metadata",
		Long: `Resolve a run and print the attributes from its metadata sidecar.

Scalar attributes are listed first; attributes holding a mapping are
printed as their own group. The run identifier shown comes from the
ProjectionId attribute when the sidecar has one.`,
		Example: `  alfa show 001
  alfa show 001 --output json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRuns,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(NewCommandContext(cmd), args[0])
		},
	}

	return cmd
}

func runShow(cmdCtx *CommandContext, id string) error {
	model, err := cmdCtx.OpenModel()
	if err != nil {
		return err
	}
	run, err := model.Run(id)
	if err != nil {
		return err
	}

	// A missing output file is not an error here; show prints what exists.
	outputFile, _ := run.OutputPath()

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.RunOutput{
			ID:            run.ID(),
			FileID:        run.FileID(),
			Model:         run.Model(),
			Description:   run.Description(),
			ValuationDate: run.ValuationDate(),
			OutputFile:    outputFile,
			Metadata:      run.Metadata(),
		})
	default:
		showRun(r, run, outputFile)
		return nil
	}
}

func showRun(r *output.Renderer, run *alfa.Run, outputFile string) {
	title := cases.Title(language.English)
	md := run.Metadata()

	r.Header(1, fmt.Sprintf("Run %s", run.ID()))
	r.KeyValue("Model", run.Model())
	if run.FileID() != run.ID() {
		r.KeyValue("File id", run.FileID())
	}
	if outputFile != "" {
		r.KeyValue("Output", outputFile)
	} else {
		r.KeyValue("Output", "(none)")
	}

	var nested []string
	for _, key := range md.Keys() {
		if md[key].IsNested() {
			nested = append(nested, key)
			continue
		}
		r.KeyValue(key, md[key].Scalar)
	}

	for _, key := range nested {
		r.Println("")
		r.Header(2, title.String(key))
		entries := md[key].Entries
		subKeys := make([]string, 0, len(entries))
		for k := range entries {
			subKeys = append(subKeys, k)
		}
		sort.Strings(subKeys)
		for _, k := range subKeys {
			r.KeyValue(k, entries[k])
		}
	}
}
