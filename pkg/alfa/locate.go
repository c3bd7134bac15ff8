package alfa

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Options configures model resolution.
type Options struct {
	// Conventions overrides the file naming rules. Empty fields fall back to
	// DefaultConventions.
	Conventions Conventions

	// Permissive downgrades ErrNotAModel to a logged warning when an explicit
	// file path does not carry the model extension. Resolution is strict by
	// default.
	Permissive bool

	// ValuationDate is an optional label attached to the model.
	ValuationDate string

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Locate turns path into the absolute path of exactly one model file.
//
// A directory is searched non-recursively for files carrying the model
// extension; exactly one must exist. A file must itself carry the model
// extension unless opts.Permissive is set.
func Locate(path string, opts Options) (string, error) {
	conv := opts.Conventions.WithDefaults()
	logger := opts.logger()

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Kind: ErrPathNotFound, Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &Error{
			Kind: ErrPathNotFound,
			Path: abs,
			Hint: "Make sure the path is spelled correctly and that it can be accessed by you",
		}
	}
	if err != nil {
		return "", &Error{Kind: ErrPathNotFound, Path: abs, Err: err}
	}

	if !info.IsDir() {
		if !conv.IsModelFile(abs) {
			if !opts.Permissive {
				return "", &Error{
					Kind: ErrNotAModel,
					Path: abs,
					Hint: "Model files end in ." + conv.ModelExt,
				}
			}
			logger.Warn("path does not carry the model extension, using it anyway",
				"path", abs, "model_ext", conv.ModelExt)
		}
		logger.Debug("resolved model", "path", abs)
		return abs, nil
	}

	candidates, err := findModelFiles(abs, conv)
	if err != nil {
		return "", err
	}

	switch len(candidates) {
	case 0:
		return "", &Error{
			Kind: ErrNoModelFound,
			Path: abs,
			Hint: "The directory must contain one *." + conv.ModelExt + " file",
		}
	case 1:
		resolved := filepath.Join(abs, candidates[0])
		logger.Debug("resolved model", "path", resolved, "searched", abs)
		return resolved, nil
	default:
		return "", &Error{
			Kind:       ErrAmbiguousModel,
			Path:       abs,
			Candidates: candidates,
			Hint:       "Pass the path of the model file itself instead of its directory",
		}
	}
}

// findModelFiles lists the regular files in dir carrying the model extension.
func findModelFiles(dir string, conv Conventions) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Kind: ErrPathNotFound, Path: dir, Err: err}
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() || !conv.IsModelFile(entry.Name()) {
			continue
		}
		found = append(found, entry.Name())
	}
	return found, nil
}
