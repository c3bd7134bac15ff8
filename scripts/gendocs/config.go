package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lathaniel/alfa/internal/cli/config"
	sharedcfg "github.com/lathaniel/alfa/internal/config"
)

// configDescriptions documents each key of the default configuration.
var configDescriptions = map[string]string{
	"model":       "Model file, or a directory holding exactly one model file",
	"strict":      "Reject a model path without the model extension",
	"state_path":  "Run catalog written by `alfa index`",
	"fields_file": "Asset input definitions read by `alfa fields`",
	"jobs":        "Runs resolved in parallel by `alfa index`",

	"conventions.model_ext":            "Extension of model files",
	"conventions.table_ext":            "Extension of table files, matched without regard to case",
	"conventions.run_marker":           "Token between the model name and the run id in run file names",
	"conventions.meta_marker":          "Token that marks a run metadata file",
	"conventions.metadata_template":    "Name of a run's metadata file",
	"conventions.output_templates":     "Names of a run's output table, in priority order",
	"conventions.log_ext":              "Extension of run log files",
	"conventions.lock_suffix":          "Suffix appended to the model file name for the lock marker",
	"conventions.project_id_key":       "Metadata attribute holding the projection identifier",
	"conventions.project_id_separator": "Separator before the run id in the projection identifier",
	"conventions.description_key":      "Metadata attribute holding the run description",
	"conventions.valuation_date_key":   "Metadata attribute holding the valuation date",
}

// generateConfigDocs writes the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "alfa configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("alfa is configured via `" + sharedcfg.ConfigFileName + "` next to your model. " +
		"Settings are layered: defaults, then the config file, then `ALFA_` environment variables, then flags.")

	defaults := sharedcfg.Defaults()
	keys := configKeys()
	headers := []string{"Key", "Environment", "Default", "Description"}

	w.Header(2, "Settings")
	var rows [][]string
	for _, key := range keys {
		if strings.HasPrefix(key, "conventions.") {
			continue
		}
		rows = append(rows, []string{InlineCode(key), InlineCode(envVar(key)), formatDefault(defaults[key]), configDescriptions[key]})
	}
	w.Table(headers, rows)

	w.Header(2, "Naming Conventions")
	w.Paragraph("File naming rules live under `conventions`. Templates expand `{model}` and `{run}`.")
	rows = nil
	for _, key := range keys {
		if !strings.HasPrefix(key, "conventions.") {
			continue
		}
		rows = append(rows, []string{InlineCode(key), InlineCode(envVar(key)), formatDefault(defaults[key]), configDescriptions[key]})
	}
	w.Table(headers, rows)

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// configKeys returns the keys of the default configuration in order.
func configKeys() []string {
	defaults := sharedcfg.Defaults()
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// envVar names the environment variable that sets key.
func envVar(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func formatDefault(v any) string {
	switch val := v.(type) {
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = InlineCode(s)
		}
		return strings.Join(quoted, ", ")
	default:
		return InlineCode(fmt.Sprint(val))
	}
}
