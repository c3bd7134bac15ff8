package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedcfg "github.com/lathaniel/alfa/internal/config"
)

func TestGenerateCLIDocs(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, generateCLIDocs(outDir))

	index, err := os.ReadFile(filepath.Join(outDir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# CLI Reference")
	assert.Contains(t, string(index), "## Model Commands")
	assert.Contains(t, string(index), "## Other Commands")
	assert.Contains(t, string(index), "`ALFA_STATE_PATH`")
	assert.Contains(t, string(index), "`--permissive`")

	for _, name := range []string{"model", "show", "output", "index", "watch", "doctor"} {
		assert.FileExists(t, filepath.Join(outDir, name+".md"))
	}

	show, err := os.ReadFile(filepath.Join(outDir, "show.md"))
	require.NoError(t, err)
	assert.Contains(t, string(show), "alfa show <run>")
	assert.Contains(t, string(show), "## Examples")
	assert.Contains(t, string(show), "## See Also")
	assert.Contains(t, string(show), "[`output`](/cli/output)")
	assert.NotContains(t, string(show), "[flags]")
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "ALFA_MODEL", envVar("model"))
	assert.Equal(t, "ALFA_CONVENTIONS_TABLE_EXT", envVar("conventions.table_ext"))
}

func TestGenerateConfigDocs(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, generateConfigDocs(outDir))

	doc, err := os.ReadFile(filepath.Join(outDir, "configuration.md"))
	require.NoError(t, err)
	content := string(doc)

	for key := range sharedcfg.Defaults() {
		assert.Contains(t, content, InlineCode(key))
	}
	assert.Contains(t, content, "`{model}.Run.{run}.Subtotal.txt`, `{model}.Run.{run}.Total.txt`")
	assert.Contains(t, content, "`ALFA_CONVENTIONS_LOCK_SUFFIX`")
}

func TestConfigDescriptionsCoverDefaults(t *testing.T) {
	for key := range sharedcfg.Defaults() {
		assert.NotEmpty(t, configDescriptions[key], "missing description for %s", key)
	}
}

func TestCleanExample(t *testing.T) {
	in := "  # first\n  alfa model\n\n    indented"
	assert.Equal(t, "# first\nalfa model\n\n  indented", cleanExample(in))
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Title")
	w.Table([]string{"A", "B"}, [][]string{{"1", "x"}})
	w.BulletList([]string{"one"})

	out := string(w.Bytes())
	assert.True(t, strings.HasPrefix(out, "## Title\n\n"))
	assert.Contains(t, out, "| A | B |")
	assert.Contains(t, out, "- one")
	assert.Equal(t, "a b", cleanDescription(" a\n  b "))
}

func TestSelectGenerators(t *testing.T) {
	assert.Len(t, selectGenerators("all"), 2)

	cli := selectGenerators("cli")
	require.Len(t, cli, 1)
	assert.Equal(t, filepath.Join("docs", "cli"), cli[0].dir)

	assert.Empty(t, selectGenerators("lint"))
}

func TestModuleRoot(t *testing.T) {
	root, err := moduleRoot()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "go.mod"))
}
