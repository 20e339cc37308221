package db

import (
	"context"
	"fmt"
)

// schemaStatements create every table the analyzer needs. All statements are
// idempotent; EnsureSchema is safe to run on every startup.
//
// The evidence_chunks uniqueness key treats NULL job_id as a value
// (NULLS NOT DISTINCT, PostgreSQL 15+) so that cross-job evidence cannot be
// double-ingested either.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS resumes (
		id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		company TEXT,
		title TEXT,
		location TEXT,
		url TEXT,
		description TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS portfolio_items (
		id BIGSERIAL PRIMARY KEY,
		resume_id BIGINT NOT NULL,
		job_id BIGINT,
		source_name TEXT NOT NULL,
		source_type TEXT NOT NULL,
		url TEXT,
		raw_text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_portfolio_items_resume
		ON portfolio_items (resume_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS evidence_chunks (
		id BIGSERIAL PRIMARY KEY,
		resume_id BIGINT NOT NULL,
		job_id BIGINT,
		source_type TEXT NOT NULL,
		source_name TEXT NOT NULL,
		section TEXT NOT NULL DEFAULT '',
		chunk_text TEXT NOT NULL,
		tags JSONB NOT NULL DEFAULT '[]',
		entities JSONB NOT NULL DEFAULT '{}',
		signals JSONB NOT NULL DEFAULT '{}',
		confidence DOUBLE PRECISION NOT NULL,
		content_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE NULLS NOT DISTINCT (resume_id, job_id, source_type, source_name, content_hash)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evidence_chunks_scope
		ON evidence_chunks (resume_id, job_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS gap_results (
		id BIGSERIAL PRIMARY KEY,
		resume_id BIGINT NOT NULL,
		job_id BIGINT NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (resume_id, job_id)
	)`,
	`CREATE TABLE IF NOT EXISTS analysis_runs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_id BIGINT NOT NULL,
		job_id BIGINT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	)`,
}

// EnsureSchema creates all tables and indexes if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
