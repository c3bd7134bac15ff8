package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const runColumns = `model_path, run_id, scan_id, file_id, description, valuation_date, metadata, output_file, indexed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*IndexedRun, error) {
	var run IndexedRun
	var metadata string
	err := row.Scan(&run.ModelPath, &run.RunID, &run.ScanID, &run.FileID, &run.Description,
		&run.ValuationDate, &metadata, &run.OutputFile, &run.IndexedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metadata), &run.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata of run %s: %w", run.FileID, err)
	}
	return &run, nil
}

// ListRuns returns the catalogued runs of a model ordered by file id.
func (s *SQLiteStore) ListRuns(ctx context.Context, modelPath string) ([]IndexedRun, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE model_path = ? ORDER BY file_id`,
		modelPath,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []IndexedRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun retrieves one catalogued run by the id in its file names. It returns
// (nil, nil) when the run was never indexed.
func (s *SQLiteStore) GetRun(ctx context.Context, modelPath, fileID string) (*IndexedRun, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE model_path = ? AND file_id = ?`,
		modelPath, fileID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}
