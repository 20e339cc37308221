package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/gap-analyzer/internal/schemas"
	"github.com/jonathan/gap-analyzer/internal/types"
)

// SaveGapResult upserts the analysis result for a (resume, job) pair. The
// last writer fully replaces the prior row, including its timestamp.
func (db *DB) SaveGapResult(ctx context.Context, resumeID, jobID int64, result *types.GapAnalysisResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal gap result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO gap_results (resume_id, job_id, result)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (resume_id, job_id) DO UPDATE SET
		   result = EXCLUDED.result,
		   created_at = NOW()`,
		resumeID, jobID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save gap result: %w", err)
	}
	return nil
}

// LoadGapResult returns the stored analysis result for a (resume, job)
// pair, or nil when there is none. Rows that fail schema validation or do
// not decode are treated as absent rather than surfaced as errors, so a
// corrupted row never blocks a re-run.
func (db *DB) LoadGapResult(ctx context.Context, resumeID, jobID int64) (*types.GapAnalysisResult, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT result FROM gap_results WHERE resume_id = $1 AND job_id = $2`,
		resumeID, jobID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load gap result: %w", err)
	}

	if err := schemas.ValidateGapResult(raw); err != nil {
		return nil, nil
	}

	var result types.GapAnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, nil
	}
	return &result, nil
}
