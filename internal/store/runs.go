package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"boardseq/internal/model"
)

// ErrRunNotFound no run with the given id
var ErrRunNotFound = errors.New("run not found")

const createdAtLayout = "2006-01-02 15:04:05"

// CreateRun records a processed upload and returns the stored summary with
// its generated id.
func (s *Store) CreateRun(ctx context.Context, run model.RunSummary) (model.RunSummary, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC().Format(createdAtLayout)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, filename, file_hash, record_count, sequence_count, warning_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Filename, run.FileHash, run.RecordCount, run.SequenceCount, run.WarningCount, run.CreatedAt)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// GetRun loads one run
func (s *Store) GetRun(ctx context.Context, id string) (model.RunSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, file_hash, record_count, sequence_count, warning_count, created_at
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RunSummary{}, ErrRunNotFound
	}
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns newest first; limit <= 0 means 50.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, file_hash, record_count, sequence_count, warning_count, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []model.RunSummary{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountRuns total number of runs
func (s *Store) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (model.RunSummary, error) {
	var run model.RunSummary
	var createdAt time.Time
	err := sc.Scan(&run.ID, &run.Filename, &run.FileHash, &run.RecordCount,
		&run.SequenceCount, &run.WarningCount, &createdAt)
	if err != nil {
		return model.RunSummary{}, err
	}
	run.CreatedAt = createdAt.UTC().Format(createdAtLayout)
	return run, nil
}
