// Package commands_test provides tests for CLI command creation.
package commands

import (
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/internal/cli/config"
	"github.com/lathaniel/alfa/internal/cli/testutil"
	coretest "github.com/lathaniel/alfa/internal/testutil"
)

// newTestContext builds a CommandContext around cfg that writes to tr.
func newTestContext(t *testing.T, cfg *config.Config, tr *testutil.TestRenderer) *CommandContext {
	t.Helper()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   coretest.NewTestLogger(t),
		Renderer: tr.Renderer,
	}
}

// decodeJSON unmarshals the renderer's output into v.
func decodeJSON(t *testing.T, tr *testutil.TestRenderer, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), v), "output: %s", tr.Output())
}

var constructors = map[string]func() *cobra.Command{
	"model":   NewModelCommand,
	"tables":  NewTablesCommand,
	"runs":    NewRunsCommand,
	"show":    NewShowCommand,
	"output":  NewOutputCommand,
	"logs":    NewLogsCommand,
	"locked":  NewLockedCommand,
	"fields":  NewFieldsCommand,
	"index":   NewIndexCommand,
	"history": NewHistoryCommand,
	"watch":   NewWatchCommand,
}

func TestCommandConstructors(t *testing.T) {
	tests := []struct {
		name  string
		use   string
		flags []string
		args  bool
	}{
		{name: "model", use: "model"},
		{name: "tables", use: "tables"},
		{name: "runs", use: "runs", flags: []string{"all"}},
		{name: "show", use: "show <run>", args: true},
		{name: "output", use: "output <run>", flags: []string{"limit"}, args: true},
		{name: "logs", use: "logs <run>", args: true},
		{name: "locked", use: "locked", flags: []string{"quiet"}},
		{name: "fields", use: "fields [asset]", flags: []string{"segment"}},
		{name: "index", use: "index", flags: []string{"jobs"}},
		{name: "history", use: "history", flags: []string{"limit", "runs"}},
		{name: "watch", use: "watch", flags: []string{"debounce"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newCmd, ok := constructors[tt.name]
			require.True(t, ok)
			cmd := newCmd()

			assert.Equal(t, tt.use, cmd.Use)
			assert.NotEmpty(t, cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
			if tt.args {
				assert.NotNil(t, cmd.ValidArgsFunction, "run commands should complete run ids")
			}
		})
	}
}

func TestCommandContext_OpenModelMissingPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = t.TempDir() + "/nowhere"
	cmdCtx := newTestContext(t, cfg, testutil.NewTestRendererMarkdown())

	_, err := cmdCtx.OpenModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model path does not exist")
	assert.Contains(t, err.Error(), "Hint:")
}

func TestCommandContext_OpenStore(t *testing.T) {
	cfg, _ := testutil.SetupTestProject(t)
	cmdCtx := newTestContext(t, cfg, testutil.NewTestRendererMarkdown())

	store, cleanup, err := cmdCtx.OpenStore(t.Context())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, cfg.StatePath, store.Path())
	assert.FileExists(t, cfg.StatePath)
}
