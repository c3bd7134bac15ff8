package alfa

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Run is one projection run recorded under a model. It keeps its own copy of
// the model directory and name so it can resolve files on its own.
type Run struct {
	id        string
	requested string
	dir       string
	model     string
	conv      Conventions
	metadata  Metadata
	logger    *slog.Logger

	mu     sync.Mutex
	output *Table
}

// Run resolves the run with the given identifier and parses its metadata.
// The output table is not read until Output is called.
func (m *Model) Run(id string) (*Run, error) {
	runs, err := m.Runs()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(runs, id) {
		return nil, &Error{
			Kind:  ErrUnknownRun,
			Run:   id,
			Model: m.Name(),
			Path:  m.Dir(),
			Hint:  "List the available runs with Model.Runs",
		}
	}

	metaPath := filepath.Join(m.Dir(), Expand(m.conv.MetadataTemplate, m.Name(), id))
	f, err := os.Open(metaPath) //nolint:gosec // G304: path is built from the model directory
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &Error{Kind: ErrMetadataMissing, Run: id, Model: m.Name(), Path: metaPath}
	}
	if err != nil {
		return nil, &Error{Kind: ErrMetadataMissing, Run: id, Model: m.Name(), Path: metaPath, Err: err}
	}
	defer func() { _ = f.Close() }()

	md, err := ParseMetadata(f)
	if err != nil {
		return nil, &Error{Kind: ErrMalformedMetadata, Run: id, Model: m.Name(), Path: metaPath, Err: err}
	}

	run := &Run{
		id:        id,
		requested: id,
		dir:       m.Dir(),
		model:     m.Name(),
		conv:      m.conv,
		metadata:  md,
		logger:    m.logger,
	}
	if projectID, ok := md.Scalar(m.conv.ProjectIDKey); ok && projectID != "" {
		run.id = lastToken(projectID, m.conv.ProjectIDSeparator)
		if run.id != id {
			m.logger.Warn("project identifier does not match the run file name",
				"model", m.Name(), "run", id, "project_id", projectID)
		}
	}

	m.logger.Debug("resolved run", "model", m.Name(), "run", run.id, "attributes", len(md))
	return run, nil
}

// RunWithOutput resolves a run and loads its output table before returning.
func (m *Model) RunWithOutput(id string) (*Run, error) {
	run, err := m.Run(id)
	if err != nil {
		return nil, err
	}
	if _, err := run.Output(); err != nil {
		return nil, err
	}
	return run, nil
}

// ID returns the run identifier, taken from the project identifier attribute
// when the sidecar has one.
func (r *Run) ID() string { return r.id }

// FileID returns the identifier as it appears in the run's file names.
func (r *Run) FileID() string { return r.requested }

// Model returns the owning model's name.
func (r *Run) Model() string { return r.model }

// Dir returns the directory the run's files live in.
func (r *Run) Dir() string { return r.dir }

// Metadata returns the parsed sidecar attributes.
func (r *Run) Metadata() Metadata { return r.metadata }

// Description returns the run description attribute.
func (r *Run) Description() string {
	s, _ := r.metadata.Scalar(r.conv.DescriptionKey)
	return s
}

// ValuationDate returns the valuation date attribute.
func (r *Run) ValuationDate() string {
	s, _ := r.metadata.Scalar(r.conv.ValuationDateKey)
	return s
}

// OutputPath returns the first output file that exists, probing the output
// templates in priority order.
func (r *Run) OutputPath() (string, error) {
	for _, tmpl := range r.conv.OutputTemplates {
		candidate := filepath.Join(r.dir, Expand(tmpl, r.model, r.requested))
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", &Error{
		Kind:  ErrOutputNotFound,
		Run:   r.requested,
		Model: r.model,
		Path:  r.dir,
		Hint:  "Only these output layouts can be read: " + strings.Join(r.conv.OutputTemplates, ", "),
	}
}

// Output loads the run's output table on first use and returns the cached
// table afterwards. A failed load is not cached.
func (r *Run) Output() (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.output != nil {
		return r.output, nil
	}

	path, err := r.OutputPath()
	if err != nil {
		return nil, err
	}

	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded run output", "model", r.model, "run", r.requested, "path", path, "rows", table.Len())
	r.output = table
	return table, nil
}

// Logs maps each log name to its file for files named
// <model>.Run.<id>.<logname>.log.
func (r *Run) Logs() (map[string]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, &Error{Kind: ErrPathNotFound, Path: r.dir, Model: r.model, Err: err}
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(r.model) +
		`\.` + regexp.QuoteMeta(r.conv.RunMarker) +
		`\.` + regexp.QuoteMeta(r.requested) +
		`\.(.+)\.` + regexp.QuoteMeta(r.conv.LogExt) + `$`)

	logs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match := pattern.FindStringSubmatch(entry.Name()); match != nil {
			logs[match[1]] = filepath.Join(r.dir, entry.Name())
		}
	}
	return logs, nil
}
