package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SaveScan records one indexing pass in a single transaction. The model's
// catalogued runs become exactly the given runs, keyed by file id: existing
// rows are updated and rows missing from the scan are removed.
func (s *SQLiteStore) SaveScan(ctx context.Context, modelPath, modelName string, runs []IndexedRun) (*Scan, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}

	scan := &Scan{
		ID:        generateID(),
		ModelPath: modelPath,
		ModelName: modelName,
		RunCount:  len(runs),
		StartedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, model_path, model_name, run_count, started_at) VALUES (?, ?, ?, ?, ?)`,
		scan.ID, scan.ModelPath, scan.ModelName, scan.RunCount, scan.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan: %w", err)
	}

	for _, run := range runs {
		metadata, err := json.Marshal(run.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata of run %s: %w", run.FileID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO runs (model_path, run_id, scan_id, file_id, description, valuation_date, metadata, output_file, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (model_path, file_id) DO UPDATE SET
				run_id = excluded.run_id,
				scan_id = excluded.scan_id,
				description = excluded.description,
				valuation_date = excluded.valuation_date,
				metadata = excluded.metadata,
				output_file = excluded.output_file,
				indexed_at = excluded.indexed_at`,
			modelPath, run.RunID, scan.ID, run.FileID, run.Description, run.ValuationDate,
			string(metadata), run.OutputFile, scan.StartedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save run %s: %w", run.FileID, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM runs WHERE model_path = ? AND scan_id <> ?`,
		modelPath, scan.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prune runs: %w", err)
	}
	if pruned, err := res.RowsAffected(); err == nil && pruned > 0 {
		s.logger.Debug("pruned runs missing from scan", "model", modelName, "count", pruned)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit scan: %w", err)
	}

	s.logger.Debug("saved scan", "id", scan.ID, "model", modelName, "runs", len(runs))
	return scan, nil
}

// ListScans returns the most recent scans first. A limit of zero or less
// returns every scan.
func (s *SQLiteStore) ListScans(ctx context.Context, limit int) ([]Scan, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model_path, model_name, run_count, started_at FROM scans ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	scans := []Scan{}
	for rows.Next() {
		var scan Scan
		if err := rows.Scan(&scan.ID, &scan.ModelPath, &scan.ModelName, &scan.RunCount, &scan.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}
