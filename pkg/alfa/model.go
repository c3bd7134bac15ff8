package alfa

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
)

// Model is a resolved MG-ALFA model file and the directory around it.
// All queries read the directory at call time; nothing is cached.
type Model struct {
	path          string
	conv          Conventions
	valuationDate string
	logger        *slog.Logger
}

// Open resolves path with Locate and wraps the result in a Model.
func Open(path string, opts Options) (*Model, error) {
	resolved, err := Locate(path, opts)
	if err != nil {
		return nil, err
	}
	return &Model{
		path:          resolved,
		conv:          opts.Conventions.WithDefaults(),
		valuationDate: opts.ValuationDate,
		logger:        opts.logger(),
	}, nil
}

// Path returns the absolute path of the model file.
func (m *Model) Path() string { return m.path }

// Dir returns the directory holding the model file.
func (m *Model) Dir() string { return filepath.Dir(m.path) }

// Filename returns the model file's base name, extension included.
func (m *Model) Filename() string { return filepath.Base(m.path) }

// Name returns the model file's base name without the model extension.
func (m *Model) Name() string { return m.conv.trimModelExt(m.Filename()) }

// ValuationDate returns the valuation date label supplied at Open, if any.
func (m *Model) ValuationDate() string { return m.valuationDate }

// Conventions returns the naming rules the model was opened with.
func (m *Model) Conventions() Conventions { return m.conv }

// Tables lists the table files directly inside the model directory, in
// directory listing order. The result is empty, not nil, when none exist.
func (m *Model) Tables() ([]string, error) {
	entries, err := m.readDir()
	if err != nil {
		return nil, err
	}

	tables := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m.conv.IsTableFile(entry.Name()) {
			tables = append(tables, entry.Name())
		}
	}
	return tables, nil
}

// Runs lists the run identifiers found in the model directory: one entry per
// file named <name>.Run.<id>.<...Meta...>. The same id is reported once for
// every matching file.
func (m *Model) Runs() ([]string, error) {
	entries, err := m.readDir()
	if err != nil {
		return nil, err
	}

	pattern := m.runPattern()
	runs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match := pattern.FindStringSubmatch(entry.Name()); match != nil {
			runs = append(runs, match[1])
		}
	}
	m.logger.Debug("listed runs", "model", m.Name(), "count", len(runs))
	return runs, nil
}

// DistinctRuns is Runs with repeated identifiers removed, keeping the first
// occurrence.
func (m *Model) DistinctRuns() ([]string, error) {
	runs, err := m.Runs()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(runs))
	distinct := runs[:0]
	for _, id := range runs {
		if seen[id] {
			continue
		}
		seen[id] = true
		distinct = append(distinct, id)
	}
	return distinct, nil
}

// Locked reports whether the tool's advisory lock marker exists next to the
// model file.
func (m *Model) Locked() bool {
	_, err := os.Stat(m.LockPath())
	return err == nil
}

// LockPath returns where the advisory lock marker would live.
func (m *Model) LockPath() string {
	return filepath.Join(m.Dir(), m.Filename()+m.conv.LockSuffix)
}

// runPattern matches <name>.<RunMarker>.<id>.<anything containing MetaMarker>.
func (m *Model) runPattern() *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(m.Name()) +
		`\.` + regexp.QuoteMeta(m.conv.RunMarker) +
		`\.([^.]+)\..*` + regexp.QuoteMeta(m.conv.MetaMarker))
}

func (m *Model) readDir() ([]os.DirEntry, error) {
	entries, err := os.ReadDir(m.Dir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &Error{Kind: ErrPathNotFound, Path: m.Dir(), Model: m.Name()}
	}
	if err != nil {
		return nil, &Error{Kind: ErrPathNotFound, Path: m.Dir(), Model: m.Name(), Err: err}
	}
	return entries, nil
}
