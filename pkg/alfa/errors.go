package alfa

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrPathNotFound      = errors.New("path not found")
	ErrNoModelFound      = errors.New("no model file found")
	ErrAmbiguousModel    = errors.New("more than one model file found")
	ErrNotAModel         = errors.New("not a model file")
	ErrUnknownRun        = errors.New("unknown run")
	ErrMetadataMissing   = errors.New("run metadata file missing")
	ErrMalformedMetadata = errors.New("malformed run metadata")
	ErrOutputNotFound    = errors.New("run output not found")
	ErrNotADirectory     = errors.New("not a directory")
)

// Error describes a resolution failure. Kind is one of the Err* values above;
// the remaining fields identify what was being resolved.
type Error struct {
	Kind       error
	Path       string
	Model      string
	Run        string
	Candidates []string
	Hint       string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Run != "" {
		fmt.Fprintf(&b, " %q", e.Run)
	}
	if e.Model != "" {
		fmt.Fprintf(&b, " for model %q", e.Model)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Candidates) > 0 {
		fmt.Fprintf(&b, "\nCandidates: %s", strings.Join(e.Candidates, ", "))
	}
	if e.Hint != "" {
		b.WriteString("\nHint: " + e.Hint)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
