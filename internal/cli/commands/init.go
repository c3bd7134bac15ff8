package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
	sharedcfg "github.com/lathaniel/alfa/internal/config"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an alfa.yaml next to a model",
		Long: `Write a starter configuration into a model directory.

This creates:
  - alfa.yaml with every setting at its default
  - fields.yaml with an example asset input
  - .gitignore excluding the local run catalog`,
		Example: `  # Initialize in the current directory
  alfa init

  # Initialize in a model directory
  alfa init ./models/Pricing

  # Force overwrite existing config
  alfa init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, sharedcfg.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", sharedcfg.ConfigFileName)
	}

	data := scaffoldData{Model: sharedcfg.DefaultModel}
	if modelPath, err := alfa.Locate(dir, alfa.Options{}); err == nil {
		data.Model = filepath.Base(modelPath)
	}

	files, err := writeScaffold("minimal", dir, data, force)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	for _, f := range files {
		if f.Written {
			r.StatusLine(f.Name, "success", "")
		} else {
			r.StatusLine(f.Name, "info", "exists, kept")
		}
	}

	r.Println("")
	r.Success("alfa configuration initialized!")
	if data.Model != sharedcfg.DefaultModel {
		r.KeyValue("Model", data.Model)
	}
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Check that model in alfa.yaml points at your model file")
	r.Println("  2. Run 'alfa model' to resolve it")
	r.Println("  3. Run 'alfa index' to record its runs")

	return nil
}
