package alfa

import (
	"path/filepath"
	"strings"
)

// Template placeholders recognized in Conventions filename templates.
const (
	PlaceholderModel = "{model}"
	PlaceholderRun   = "{run}"
)

// Conventions holds every naming rule the resolver depends on.
// The zero value is not usable; start from DefaultConventions.
type Conventions struct {
	ModelExt           string   `koanf:"model_ext" json:"model_ext"`
	TableExt           string   `koanf:"table_ext" json:"table_ext"`
	RunMarker          string   `koanf:"run_marker" json:"run_marker"`
	MetaMarker         string   `koanf:"meta_marker" json:"meta_marker"`
	MetadataTemplate   string   `koanf:"metadata_template" json:"metadata_template"`
	OutputTemplates    []string `koanf:"output_templates" json:"output_templates"`
	LogExt             string   `koanf:"log_ext" json:"log_ext"`
	LockSuffix         string   `koanf:"lock_suffix" json:"lock_suffix"`
	ProjectIDKey       string   `koanf:"project_id_key" json:"project_id_key"`
	ProjectIDSeparator string   `koanf:"project_id_separator" json:"project_id_separator"`
	DescriptionKey     string   `koanf:"description_key" json:"description_key"`
	ValuationDateKey   string   `koanf:"valuation_date_key" json:"valuation_date_key"`
}

// DefaultConventions returns the naming rules used by MG-ALFA itself.
func DefaultConventions() Conventions {
	return Conventions{
		ModelExt:         "ain2",
		TableExt:         "atB2X",
		RunMarker:        "Run",
		MetaMarker:       "Meta",
		MetadataTemplate: "{model}.Run.{run}.Metadata.xml",
		OutputTemplates: []string{
			"{model}.Run.{run}.Subtotal.txt",
			"{model}.Run.{run}.Total.txt",
		},
		LogExt:             "log",
		LockSuffix:         ".lock",
		ProjectIDKey:       "ProjectionId",
		ProjectIDSeparator: ".",
		DescriptionKey:     "Description",
		ValuationDateKey:   "ValuationDate",
	}
}

// WithDefaults returns a copy of c where every empty field is taken from
// DefaultConventions.
func (c Conventions) WithDefaults() Conventions {
	d := DefaultConventions()
	if c.ModelExt == "" {
		c.ModelExt = d.ModelExt
	}
	if c.TableExt == "" {
		c.TableExt = d.TableExt
	}
	if c.RunMarker == "" {
		c.RunMarker = d.RunMarker
	}
	if c.MetaMarker == "" {
		c.MetaMarker = d.MetaMarker
	}
	if c.MetadataTemplate == "" {
		c.MetadataTemplate = d.MetadataTemplate
	}
	if len(c.OutputTemplates) == 0 {
		c.OutputTemplates = d.OutputTemplates
	}
	if c.LogExt == "" {
		c.LogExt = d.LogExt
	}
	if c.LockSuffix == "" {
		c.LockSuffix = d.LockSuffix
	}
	if c.ProjectIDKey == "" {
		c.ProjectIDKey = d.ProjectIDKey
	}
	if c.ProjectIDSeparator == "" {
		c.ProjectIDSeparator = d.ProjectIDSeparator
	}
	if c.DescriptionKey == "" {
		c.DescriptionKey = d.DescriptionKey
	}
	if c.ValuationDateKey == "" {
		c.ValuationDateKey = d.ValuationDateKey
	}
	return c
}

// Expand fills the {model} and {run} placeholders of a filename template.
func Expand(template, model, run string) string {
	return strings.NewReplacer(PlaceholderModel, model, PlaceholderRun, run).Replace(template)
}

// hasExt reports whether name's final extension equals ext, ignoring case.
// ext is given without the leading dot.
func hasExt(name, ext string) bool {
	got := strings.TrimPrefix(filepath.Ext(name), ".")
	return got != "" && strings.EqualFold(got, ext)
}

// IsModelFile reports whether name carries the model extension.
func (c Conventions) IsModelFile(name string) bool {
	return hasExt(name, c.ModelExt)
}

// IsTableFile reports whether name carries the table extension.
func (c Conventions) IsTableFile(name string) bool {
	return hasExt(name, c.TableExt)
}

// trimModelExt strips the model extension from a filename.
func (c Conventions) trimModelExt(filename string) string {
	if c.IsModelFile(filename) {
		return filename[:len(filename)-len(filepath.Ext(filename))]
	}
	return filename
}
