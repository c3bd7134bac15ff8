package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/output"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the alfa version and the Go toolchain it was built with.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runVersion(r, version)
		},
	}
}

func runVersion(r *output.Renderer, version string) error {
	info := output.VersionOutput{
		Version:  version,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(info)
	}
	r.Printf("alfa v%s\n", info.Version)
	r.Printf("MG-ALFA model directory resolver (%s, %s)\n", info.Go, info.Platform)
	return nil
}
