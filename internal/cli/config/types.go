// Package config provides configuration management for the alfa CLI.
//
// This package extends the shared project settings from internal/config
// with CLI-specific fields (output mode, verbosity) and the layered
// defaults, file, env, flags loading order.
package config

import (
	sharedcfg "github.com/lathaniel/alfa/internal/config"
	"github.com/lathaniel/alfa/pkg/alfa"
)

// Conventions is an alias for the resolver's naming rules.
type Conventions = alfa.Conventions

// Config holds all CLI configuration options.
type Config struct {
	Model        string      `koanf:"model"`
	Strict       bool        `koanf:"strict"`
	StatePath    string      `koanf:"state_path"`
	FieldsFile   string      `koanf:"fields_file"`
	Jobs         int         `koanf:"jobs"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Conventions  Conventions `koanf:"conventions"`

	// ProjectRoot anchors relative paths from the config file and defaults.
	ProjectRoot string `koanf:"-"`

	// UnusedKeys lists configured keys no setting matches, typically typos.
	UnusedKeys []string `koanf:"-"`
}

// Project returns the settings shared with non-CLI callers.
func (c *Config) Project() *sharedcfg.ProjectConfig {
	return &sharedcfg.ProjectConfig{
		Model:       c.Model,
		Strict:      c.Strict,
		StatePath:   c.StatePath,
		FieldsFile:  c.FieldsFile,
		Jobs:        c.Jobs,
		Conventions: c.Conventions,
	}
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultModel      = sharedcfg.DefaultModel
	DefaultStatePath  = sharedcfg.DefaultStatePath
	DefaultFieldsFile = sharedcfg.DefaultFieldsFile
	DefaultJobs       = sharedcfg.DefaultJobs
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix         = "ALFA_"
)

// DefaultConfig returns a Config holding only defaults, anchored at the
// current directory.
func DefaultConfig() *Config {
	return &Config{
		Model:        DefaultModel,
		Strict:       sharedcfg.DefaultStrict,
		StatePath:    DefaultStatePath,
		FieldsFile:   DefaultFieldsFile,
		Jobs:         DefaultJobs,
		OutputFormat: DefaultOutput,
		Conventions:  alfa.DefaultConventions(),
		ProjectRoot:  ".",
	}
}
