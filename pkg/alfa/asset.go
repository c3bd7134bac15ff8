package alfa

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// AssetInputExt is the extension of asset input files built for a segment.
const AssetInputExt = "aia2"

// AssetInput describes one asset input (for example "Bond"): the ordered
// fields each record carries and where segment files are written.
type AssetInput struct {
	name       string
	fields     []string
	outputDest string
}

// NewAssetInput creates an asset input with the given ordered field keys.
// The output destination defaults to the current directory.
func NewAssetInput(name string, fields []string) *AssetInput {
	return &AssetInput{
		name:       name,
		fields:     slices.Clone(fields),
		outputDest: ".",
	}
}

// Name returns the asset input name.
func (a *AssetInput) Name() string { return a.name }

// Fields returns the ordered field keys.
func (a *AssetInput) Fields() []string { return slices.Clone(a.fields) }

// OutputDest returns the directory segment files are written to.
func (a *AssetInput) OutputDest() string { return a.outputDest }

// SetOutputDest changes the output directory. It must be an existing
// directory.
func (a *AssetInput) SetOutputDest(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: ErrNotADirectory, Path: dir, Hint: "Create the directory before using it as an output destination"}
	}
	if err != nil {
		return &Error{Kind: ErrNotADirectory, Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &Error{Kind: ErrNotADirectory, Path: dir}
	}
	a.outputDest = dir
	return nil
}

// SegmentFile returns the path of the file built for segment:
// <dest>/<segment>_<name>.aia2.
func (a *AssetInput) SegmentFile(segment string) string {
	return filepath.Join(a.outputDest, fmt.Sprintf("%s_%s.%s", segment, a.name, AssetInputExt))
}
