// Package cli provides the command-line interface for alfa.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/commands"
	"github.com/lathaniel/alfa/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "alfa",
		Short: "alfa - MG-ALFA model directory resolver",
		Long: `alfa reads MG-ALFA model directories without opening MG-ALFA.

It resolves a model file from a path, lists its tables and runs, reads run
metadata and output tables, and keeps a local catalog of indexed runs.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			for _, key := range cfg.UnusedKeys {
				logger.Warn("unknown config key", "key", key)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./alfa.yaml)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model file, or a directory holding one")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("permissive", false, "Accept a model file without the model extension")
	rootCmd.PersistentFlags().String("state", "", "Path to the run catalog database")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "model", Title: "Model Commands:"},
		&cobra.Group{ID: "runs", Title: "Run Commands:"},
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "project", Title: "Project Commands:"},
	)
	addGrouped(rootCmd, "model",
		commands.NewModelCommand(),
		commands.NewTablesCommand(),
		commands.NewRunsCommand(),
		commands.NewLockedCommand(),
	)
	addGrouped(rootCmd, "runs",
		commands.NewShowCommand(),
		commands.NewOutputCommand(),
		commands.NewLogsCommand(),
	)
	addGrouped(rootCmd, "catalog",
		commands.NewIndexCommand(),
		commands.NewHistoryCommand(),
		commands.NewWatchCommand(),
	)
	addGrouped(rootCmd, "project",
		commands.NewInitCommand(),
		commands.NewFieldsCommand(),
		commands.NewDoctorCommand(),
	)
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func addGrouped(root *cobra.Command, groupID string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = groupID
		root.AddCommand(cmd)
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// `locked --quiet` reports through the exit status only
		if !errors.Is(err, commands.ErrModelLocked) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for alfa.

To load completions:

Bash:
  $ source <(alfa completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ alfa completion bash > /etc/bash_completion.d/alfa
  # macOS:
  $ alfa completion bash > $(brew --prefix)/etc/bash_completion.d/alfa

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ alfa completion zsh > "${fpath[1]}/_alfa"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ alfa completion fish | source

  # To load completions for each session, execute once:
  $ alfa completion fish > ~/.config/fish/completions/alfa.fish

PowerShell:
  PS> alfa completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> alfa completion powershell > alfa.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
