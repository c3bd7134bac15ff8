package config

import "github.com/lathaniel/alfa/pkg/alfa"

// Default configuration values.
const (
	DefaultModel      = "."
	DefaultStatePath  = ".alfa/catalog.db"
	DefaultFieldsFile = "fields.yaml"
	DefaultJobs       = 4
	DefaultStrict     = true
)

// Defaults returns the default configuration as a flat koanf map, with the
// naming conventions nested under "conventions".
func Defaults() map[string]any {
	conv := alfa.DefaultConventions()
	return map[string]any{
		"model":       DefaultModel,
		"strict":      DefaultStrict,
		"state_path":  DefaultStatePath,
		"fields_file": DefaultFieldsFile,
		"jobs":        DefaultJobs,

		"conventions.model_ext":            conv.ModelExt,
		"conventions.table_ext":            conv.TableExt,
		"conventions.run_marker":           conv.RunMarker,
		"conventions.meta_marker":          conv.MetaMarker,
		"conventions.metadata_template":    conv.MetadataTemplate,
		"conventions.output_templates":     conv.OutputTemplates,
		"conventions.log_ext":              conv.LogExt,
		"conventions.lock_suffix":          conv.LockSuffix,
		"conventions.project_id_key":       conv.ProjectIDKey,
		"conventions.project_id_separator": conv.ProjectIDSeparator,
		"conventions.description_key":      conv.DescriptionKey,
		"conventions.valuation_date_key":   conv.ValuationDateKey,
	}
}

// ApplyDefaults fills zero values of a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath
	}
	if c.FieldsFile == "" {
		c.FieldsFile = DefaultFieldsFile
	}
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobs
	}
	c.Conventions = c.Conventions.WithDefaults()
}
