package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lathaniel/alfa/internal/cli/config"
	"github.com/lathaniel/alfa/internal/cli/output"
	"github.com/lathaniel/alfa/internal/fields"
	"github.com/lathaniel/alfa/internal/state"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration
// and the command's writers.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// OpenModel resolves the configured model path.
func (c *CommandContext) OpenModel() (*alfa.Model, error) {
	if err := c.Cfg.ValidateModelPath(); err != nil {
		return nil, err
	}
	return alfa.Open(c.Cfg.Model, c.Cfg.Project().Options(c.Logger))
}

// OpenStore opens and migrates the run catalog.
// Returns the store and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenStore(ctx context.Context) (*state.SQLiteStore, func(), error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// LoadFields reads the configured field definitions file. A missing file
// yields nil definitions.
func (c *CommandContext) LoadFields() (*fields.Definitions, error) {
	return fields.Load(c.Cfg.FieldsFile)
}

// getConfig returns the current configuration, or defaults when no
// configuration was loaded (commands constructed outside the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// completeRuns offers the model's run identifiers for shell completion.
func completeRuns(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	model, err := NewCommandContext(cmd).OpenModel()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	runs, err := model.DistinctRuns()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return runs, cobra.ShellCompDirectiveNoFileComp
}
