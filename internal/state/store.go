// Package state keeps a local catalog of indexed model runs in SQLite.
// Each `alfa index` invocation records a scan and replaces the model's runs,
// one row per run file.
package state

import (
	"context"
	"time"

	"github.com/lathaniel/alfa/pkg/alfa"
)

// Scan is one indexing pass over a model directory.
type Scan struct {
	ID        string    `json:"id"`
	ModelPath string    `json:"model_path"`
	ModelName string    `json:"model_name"`
	RunCount  int       `json:"run_count"`
	StartedAt time.Time `json:"started_at"`
}

// IndexedRun is the catalog record of one run. FileID identifies the run
// within its model; RunID is the id reported by the run's ProjectionId and
// may repeat.
type IndexedRun struct {
	ModelPath     string        `json:"model_path"`
	RunID         string        `json:"run_id"`
	FileID        string        `json:"file_id"`
	ScanID        string        `json:"scan_id"`
	Description   string        `json:"description"`
	ValuationDate string        `json:"valuation_date"`
	Metadata      alfa.Metadata `json:"metadata"`
	OutputFile    string        `json:"output_file,omitempty"`
	IndexedAt     time.Time     `json:"indexed_at"`
}

// NewIndexedRun captures a resolved run for the catalog. A run without an
// output file is recorded with an empty OutputFile.
func NewIndexedRun(modelPath string, run *alfa.Run) IndexedRun {
	output, _ := run.OutputPath()
	return IndexedRun{
		ModelPath:     modelPath,
		RunID:         run.ID(),
		FileID:        run.FileID(),
		Description:   run.Description(),
		ValuationDate: run.ValuationDate(),
		Metadata:      run.Metadata(),
		OutputFile:    output,
	}
}

// Store is the run catalog.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	SaveScan(ctx context.Context, modelPath, modelName string, runs []IndexedRun) (*Scan, error)
	ListScans(ctx context.Context, limit int) ([]Scan, error)
	ListRuns(ctx context.Context, modelPath string) ([]IndexedRun, error)
	GetRun(ctx context.Context, modelPath, fileID string) (*IndexedRun, error)
}

var _ Store = (*SQLiteStore)(nil)
