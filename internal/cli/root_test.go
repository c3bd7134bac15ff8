package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/internal/cli/config"
	"github.com/lathaniel/alfa/internal/cli/output"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			logger := NewLogger(buf, tt.verbose)

			logger.Debug("debug line")
			logger.Warn("warn line", "key", "value")

			assert.Contains(t, buf.String(), "warn line")
			assert.Contains(t, buf.String(), "key=value")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
		})
	}
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	for _, flag := range []string{"config", "model", "output", "verbose", "permissive", "state"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "m", cmd.PersistentFlags().Lookup("model").Shorthand)
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)
}

func TestRootCmd_OutputFlagReachesCommands(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	stdout := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--output", "json", "version"})

	require.NoError(t, root.Execute())

	var got output.VersionOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, Version, got.Version)
}

func TestCompletionCommand(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"completion", "zsh"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "alfa")
}

func TestNewRootCmd_Groups(t *testing.T) {
	root := NewRootCmd()

	groups := map[string][]string{}
	for _, cmd := range root.Commands() {
		if cmd.GroupID != "" {
			groups[cmd.GroupID] = append(groups[cmd.GroupID], cmd.Name())
		}
	}

	assert.ElementsMatch(t, []string{"model", "tables", "runs", "locked"}, groups["model"])
	assert.ElementsMatch(t, []string{"show", "output", "logs"}, groups["runs"])
	assert.ElementsMatch(t, []string{"index", "history", "watch"}, groups["catalog"])
	assert.ElementsMatch(t, []string{"init", "fields", "doctor"}, groups["project"])
	assert.Len(t, root.Groups(), 4)
}
