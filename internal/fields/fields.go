// Package fields loads asset input field definitions from fields.yaml.
//
// The file maps each asset input name to the ordered field keys its records
// carry, either as a bare list or with a directory for its segment files:
//
//	Bond:
//	  fields: [CUSIP, Par, Coupon, Maturity]
//	  output_dest: inputs/
//	Mortgage: [LoanID, Balance, Rate]
package fields

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lathaniel/alfa/pkg/alfa"
)

// Asset is the definition of one asset input.
type Asset struct {
	Fields     []string `yaml:"fields" json:"fields"`
	OutputDest string   `yaml:"output_dest,omitempty" json:"output_dest,omitempty"`
}

// UnmarshalYAML accepts a bare list of fields as well as the full mapping.
func (a *Asset) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&a.Fields)
	}
	type plain Asset
	return node.Decode((*plain)(a))
}

// Definitions holds every asset input read from a fields file.
type Definitions struct {
	Assets map[string]Asset `json:"assets"`

	// dir is the directory of the file; relative output destinations are
	// resolved against it.
	dir string
}

// Load reads the fields file at path.
// Returns nil (not an error) if the file does not exist.
func Load(path string) (*Definitions, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from configuration
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	defs := Definitions{Assets: map[string]Asset{}}
	if err := yaml.Unmarshal(data, &defs.Assets); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	for name, asset := range defs.Assets {
		if len(asset.Fields) == 0 {
			return nil, fmt.Errorf("%s: asset %q has no fields", path, name)
		}
	}
	defs.dir = filepath.Dir(path)
	return &defs, nil
}

// Names returns the asset input names in sorted order. Safe to call on a nil
// *Definitions receiver.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Assets))
	for name := range d.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns the ordered field keys of the named asset input.
func (d *Definitions) Fields(name string) ([]string, bool) {
	if d == nil {
		return nil, false
	}
	asset, ok := d.Assets[name]
	if !ok {
		return nil, false
	}
	return asset.Fields, true
}

// AssetInput builds the named asset input, applying its output destination
// when one is set.
func (d *Definitions) AssetInput(name string) (*alfa.AssetInput, error) {
	fields, ok := d.Fields(name)
	if !ok {
		return nil, fmt.Errorf("unknown asset input %q", name)
	}

	input := alfa.NewAssetInput(name, fields)
	if dest := d.Assets[name].OutputDest; dest != "" {
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(d.dir, dest)
		}
		if err := input.SetOutputDest(dest); err != nil {
			return nil, err
		}
	}
	return input, nil
}
