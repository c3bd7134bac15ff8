// Package config provides shared configuration types for alfa.
// This package is decoupled from CLI concerns and can be used by any tool
// that needs to load a project's alfa.yaml.
package config

import (
	"log/slog"

	"github.com/lathaniel/alfa/pkg/alfa"
)

// ProjectConfig holds the project settings shared by every entry point.
type ProjectConfig struct {
	// Model is the model file or the directory holding it.
	Model string `koanf:"model"`

	// Strict rejects explicit model paths without the model extension.
	Strict bool `koanf:"strict"`

	StatePath   string           `koanf:"state_path"`
	FieldsFile  string           `koanf:"fields_file"`
	Jobs        int              `koanf:"jobs"`
	Conventions alfa.Conventions `koanf:"conventions"`
}

// Options converts the project settings into resolver options.
func (c *ProjectConfig) Options(logger *slog.Logger) alfa.Options {
	return alfa.Options{
		Conventions: c.Conventions,
		Permissive:  !c.Strict,
		Logger:      logger,
	}
}
