package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/gap-analyzer/internal/types"
)

// UpsertEvidence inserts one evidence chunk, ignoring duplicates under the
// (resume, job, source, content hash) uniqueness key. It reports whether a
// new row was actually inserted.
func (db *DB) UpsertEvidence(ctx context.Context, chunk *types.EvidenceChunk) (bool, error) {
	tags, err := json.Marshal(chunk.Tags)
	if err != nil {
		return false, fmt.Errorf("failed to marshal tags: %w", err)
	}
	entities, err := json.Marshal(chunk.Entities)
	if err != nil {
		return false, fmt.Errorf("failed to marshal entities: %w", err)
	}
	signals, err := json.Marshal(chunk.Signals)
	if err != nil {
		return false, fmt.Errorf("failed to marshal signals: %w", err)
	}

	var id int64
	err = db.pool.QueryRow(ctx,
		`INSERT INTO evidence_chunks
		   (resume_id, job_id, source_type, source_name, section, chunk_text,
		    tags, entities, signals, confidence, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (resume_id, job_id, source_type, source_name, content_hash) DO NOTHING
		 RETURNING id`,
		chunk.ResumeID, chunk.JobID, chunk.SourceType, chunk.SourceName,
		chunk.Section, chunk.ChunkText, tags, entities, signals,
		chunk.Confidence, chunk.ContentHash,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: the chunk is already cached.
			return false, nil
		}
		return false, fmt.Errorf("failed to upsert evidence chunk: %w", err)
	}

	chunk.ID = types.FormatEvidenceID(id)
	return true, nil
}

// QueryEvidence loads cached evidence for a resume, newest first. With a
// non-nil jobID the scope is that job's chunks plus cross-job (NULL job_id)
// chunks; with nil jobID every chunk for the resume qualifies.
func (db *DB) QueryEvidence(ctx context.Context, resumeID int64, jobID *int64, limit int) ([]*types.EvidenceChunk, error) {
	const cols = `id, resume_id, job_id, source_type, source_name, section,
		chunk_text, tags, entities, signals, confidence, content_hash`

	var (
		rows pgx.Rows
		err  error
	)
	if jobID == nil {
		rows, err = db.pool.Query(ctx,
			`SELECT `+cols+` FROM evidence_chunks
			 WHERE resume_id = $1
			 ORDER BY created_at DESC, id DESC
			 LIMIT $2`,
			resumeID, limit,
		)
	} else {
		rows, err = db.pool.Query(ctx,
			`SELECT `+cols+` FROM evidence_chunks
			 WHERE resume_id = $1 AND (job_id = $2 OR job_id IS NULL)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			resumeID, *jobID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evidence chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*types.EvidenceChunk
	for rows.Next() {
		chunk, err := scanEvidenceRow(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read evidence chunks: %w", err)
	}
	return chunks, nil
}

func scanEvidenceRow(rows pgx.Rows) (*types.EvidenceChunk, error) {
	var (
		chunk    types.EvidenceChunk
		rowID    int64
		tags     []byte
		entities []byte
		signals  []byte
	)
	err := rows.Scan(&rowID, &chunk.ResumeID, &chunk.JobID, &chunk.SourceType,
		&chunk.SourceName, &chunk.Section, &chunk.ChunkText,
		&tags, &entities, &signals, &chunk.Confidence, &chunk.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("failed to scan evidence chunk: %w", err)
	}

	chunk.ID = types.FormatEvidenceID(rowID)
	if err := json.Unmarshal(tags, &chunk.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags for %s: %w", chunk.ID, err)
	}
	if err := json.Unmarshal(entities, &chunk.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities for %s: %w", chunk.ID, err)
	}
	if err := json.Unmarshal(signals, &chunk.Signals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signals for %s: %w", chunk.ID, err)
	}
	return &chunk, nil
}
