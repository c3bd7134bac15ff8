package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/fields"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	var segment string

	cmd := &cobra.Command{
		Use:   "fields [asset]",
		Short: "Show asset input field definitions",
		Long: `Show the asset inputs defined in the fields file (fields_file in alfa.yaml).

Without an argument every asset input is listed. With an asset name its
ordered fields and output destination are shown; --segment also prints the
file a segment of that asset would be written to.`,
		Example: `  alfa fields
  alfa fields Bond
  alfa fields Bond --segment Corporate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runFields(NewCommandContext(cmd), name, segment)
		},
	}

	cmd.Flags().StringVar(&segment, "segment", "", "Print the segment file path for this segment")

	return cmd
}

func runFields(cmdCtx *CommandContext, name, segment string) error {
	defs, err := cmdCtx.LoadFields()
	if err != nil {
		return err
	}
	if defs == nil {
		return fmt.Errorf("fields file not found: %s\nHint: Set fields_file in alfa.yaml", cmdCtx.Cfg.FieldsFile)
	}
	if segment != "" && name == "" {
		return fmt.Errorf("--segment requires an asset name")
	}

	names := defs.Names()
	if name != "" {
		names = []string{name}
	}

	assets := make([]output.AssetInputInfo, 0, len(names))
	for _, n := range names {
		info, err := assetInfo(defs, n)
		if err != nil {
			return err
		}
		assets = append(assets, info)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.FieldsOutput{File: cmdCtx.Cfg.FieldsFile, Assets: assets})
	default:
		r.Header(1, fmt.Sprintf("Asset inputs (%d)", len(assets)))
		for _, a := range assets {
			r.Header(2, a.Name)
			r.KeyValue("Fields", strings.Join(a.Fields, ", "))
			r.KeyValue("Output", a.OutputDest)
		}
		if segment != "" {
			input, err := defs.AssetInput(name)
			if err != nil {
				return err
			}
			r.KeyValue("Segment file", input.SegmentFile(segment))
		}
		return nil
	}
}

func assetInfo(defs *fields.Definitions, name string) (output.AssetInputInfo, error) {
	input, err := defs.AssetInput(name)
	if err != nil {
		return output.AssetInputInfo{}, err
	}
	return output.AssetInputInfo{
		Name:       input.Name(),
		Fields:     input.Fields(),
		OutputDest: input.OutputDest(),
	}, nil
}
