// Package testutil sets up projects and renderers for command tests.
package testutil

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lathaniel/alfa/internal/cli/config"
	"github.com/lathaniel/alfa/internal/cli/output"
	coretest "github.com/lathaniel/alfa/internal/testutil"
)

// SetupTestProject creates the shared test model and a configuration that
// points at it. The catalog lives in its own temporary directory so indexing
// never adds files next to the model.
func SetupTestProject(t *testing.T) (*config.Config, *coretest.ModelDir) {
	t.Helper()

	md := coretest.SetupTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Model = md.Dir
	cfg.ProjectRoot = md.Dir
	cfg.StatePath = filepath.Join(t.TempDir(), "catalog.db")
	cfg.FieldsFile = filepath.Join(md.Dir, config.DefaultFieldsFile)
	return cfg, md
}

// TestRenderer is a Renderer writing into buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

func newTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	tr := &TestRenderer{Out: new(bytes.Buffer), ErrOut: new(bytes.Buffer)}
	tr.Renderer = output.NewRendererWithTTY(tr.Out, tr.ErrOut, isTTY, mode)
	return tr
}

// NewTestRendererText renders styled text as on a terminal.
func NewTestRendererText() *TestRenderer { return newTestRenderer(output.ModeText, true) }

// NewTestRendererMarkdown renders markdown as when piped.
func NewTestRendererMarkdown() *TestRenderer { return newTestRenderer(output.ModeMarkdown, false) }

// NewTestRendererJSON renders JSON.
func NewTestRendererJSON() *TestRenderer { return newTestRenderer(output.ModeJSON, false) }

// Output returns what was written to stdout.
func (tr *TestRenderer) Output() string { return tr.Out.String() }

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails when s carries terminal escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	assert.NotRegexp(t, ansiPattern, s, "output contains ANSI escape codes")
}

// AssertValidMarkdown checks that code fences are balanced and that no
// heading is empty.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	assert.Zero(t, strings.Count(md, "```")%2, "unbalanced code fences")
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			assert.NotEmpty(t, strings.TrimLeft(trimmed, "# "), "empty heading at line %d", i+1)
		}
	}
}
