// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/scriptembed/internal/ports/secondary"
)

// RunRepository implements secondary.RunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Record persists a run and its scripts in one transaction.
func (r *RunRepository) Record(ctx context.Context, run *secondary.RunRecord, scripts []*secondary.RunScriptRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (root_dir, scripts_dir, output_dir, script_count, chunk_count, header_hash, source_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RootDir, run.ScriptsDir, run.OutputDir, run.ScriptCount, run.ChunkCount, run.HeaderHash, run.SourceHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	for i, s := range scripts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_scripts (run_id, position, name, rel_path, bytes, num_chunks, content_hash)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, s.Name, s.RelPath, s.Bytes, s.NumChunks, s.ContentHash,
		)
		if err != nil {
			return fmt.Errorf("failed to record script %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	for _, s := range scripts {
		s.RunID = id
	}
	return nil
}

// List retrieves the most recent runs, newest first. A limit <= 0 returns all runs.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, root_dir, scripts_dir, output_dir, script_count, chunk_count, header_hash, source_hash, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.RunRecord{}
		err := rows.Scan(&record.ID, &record.RootDir, &record.ScriptsDir, &record.OutputDir,
			&record.ScriptCount, &record.ChunkCount, &record.HeaderHash, &record.SourceHash, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// GetScripts retrieves the scripts recorded for a run, in table order.
func (r *RunRepository) GetScripts(ctx context.Context, runID int64) ([]*secondary.RunScriptRecord, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, name, rel_path, bytes, num_chunks, content_hash
		 FROM run_scripts WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run scripts: %w", err)
	}
	defer rows.Close()

	var scripts []*secondary.RunScriptRecord
	for rows.Next() {
		record := &secondary.RunScriptRecord{}
		err := rows.Scan(&record.RunID, &record.Name, &record.RelPath, &record.Bytes, &record.NumChunks, &record.ContentHash)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run script: %w", err)
		}
		scripts = append(scripts, record)
	}

	return scripts, rows.Err()
}

var _ secondary.RunRepository = (*RunRepository)(nil)
