package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lathaniel/alfa/pkg/alfa"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, `
model: models/TestModel.ain2
strict: false
jobs: 8
conventions:
  model_ext: ain
  output_templates:
    - "{model}.Run.{run}.Total.txt"
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, filepath.Join(dir, "models", "TestModel.ain2"), cfg.Model)
	assert.False(t, cfg.Strict)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, filepath.Join(dir, DefaultStatePath), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, DefaultFieldsFile), cfg.FieldsFile)
	assert.Equal(t, "ain", cfg.Conventions.ModelExt)
	assert.Equal(t, "atB2X", cfg.Conventions.TableExt)
	assert.Equal(t, []string{"{model}.Run.{run}.Total.txt"}, cfg.Conventions.OutputTemplates)

	opts := cfg.Options(nil)
	assert.True(t, opts.Permissive)
	assert.Equal(t, "ain", opts.Conventions.ModelExt)
}

func TestLoadFromDir_NoConfig(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDir_AltName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileNameAlt, "jobs: 2\n")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 2, cfg.Jobs)
	assert.True(t, cfg.Strict)
	assert.Equal(t, alfa.DefaultConventions(), cfg.Conventions)
}

func TestLoadFromDir_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, "jobs: [1, 2\n")

	_, err := LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestDecode(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, k.Load(confmap.Provider(map[string]any{
		"jobs":                         "3",
		"strict":                       "false",
		"conventions.output_templates": "a.txt,b.txt",
		"colour":                       "blue",
	}, "."), nil))

	var cfg ProjectConfig
	unused, err := Decode(k, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Jobs)
	assert.False(t, cfg.Strict)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Conventions.OutputTemplates)
	assert.Equal(t, []string{"colour"}, unused)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, FindProjectRoot(nested, 10))

	writeConfig(t, root, ConfigFileName, "")
	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Empty(t, FindProjectRoot(nested, 2))
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{":memory:", ":memory:"},
		{"/abs/catalog.db", "/abs/catalog.db"},
		{".alfa/catalog.db", filepath.Join("/base", ".alfa", "catalog.db")},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.path, "/base"))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &ProjectConfig{Jobs: -1}
	ApplyDefaults(cfg)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
	assert.Equal(t, alfa.DefaultConventions(), cfg.Conventions)

	ApplyDefaults(nil)
}
