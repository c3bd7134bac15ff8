package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q\nHint: Use one of %v", c.OutputFormat, OutputFormats)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if len(c.Conventions.OutputTemplates) == 0 {
		return fmt.Errorf("conventions.output_templates must list at least one template")
	}
	return nil
}

// ValidateModelPath checks that the configured model path exists.
// Commands call it before resolving so the hint names the setting.
func (c *Config) ValidateModelPath() error {
	if _, err := os.Stat(c.Model); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("model path does not exist: %s\nHint: Pass --model or set model in alfa.yaml", c.Model)
	}
	return nil
}
