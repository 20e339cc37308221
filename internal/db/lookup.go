package db

import (
	"context"
	"fmt"
)

// Databases migrated from earlier tools keep job and resume text under
// varying table and column names. Rather than hard-code one layout, the
// lookup probes information_schema once per process for the first
// (table, text column, id column) combination that exists and caches it.
// Every failure path returns empty text; the caller decides whether missing
// text is fatal.

type textSource struct {
	table   string
	textCol string
	idCol   string
}

type sourceCandidate struct {
	tables   []string
	textCols []string
	idCols   []string
}

var (
	jobCandidates = sourceCandidate{
		tables:   []string{"jobs", "job", "job_posts", "job_post"},
		textCols: []string{"description", "job_desc", "job_description", "raw_text", "text"},
		idCols:   []string{"id", "job_id"},
	}
	resumeCandidates = sourceCandidate{
		tables:   []string{"resumes", "resume"},
		textCols: []string{"raw_text", "text", "content", "resume_text"},
		idCols:   []string{"id", "resume_id"},
	}
)

// GetJobDescription returns the job description text for jobID, or "" when
// no known table layout holds it.
func (db *DB) GetJobDescription(ctx context.Context, jobID int64) string {
	db.jobLookupOnce.Do(func() {
		db.jobSource = db.resolveTextSource(ctx, jobCandidates)
	})
	return db.fetchText(ctx, db.jobSource, jobID)
}

// GetResumeText returns the raw resume text for resumeID, or "" when no
// known table layout holds it.
func (db *DB) GetResumeText(ctx context.Context, resumeID int64) string {
	db.resumeLookupOnce.Do(func() {
		db.resumeSource = db.resolveTextSource(ctx, resumeCandidates)
	})
	return db.fetchText(ctx, db.resumeSource, resumeID)
}

func (db *DB) resolveTextSource(ctx context.Context, cand sourceCandidate) *textSource {
	for _, table := range cand.tables {
		cols, err := db.tableColumns(ctx, table)
		if err != nil || len(cols) == 0 {
			continue
		}
		textCol := firstExisting(cols, cand.textCols)
		idCol := firstExisting(cols, cand.idCols)
		if textCol == "" || idCol == "" {
			continue
		}
		return &textSource{table: table, textCol: textCol, idCol: idCol}
	}
	return nil
}

func (db *DB) tableColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = struct{}{}
	}
	return cols, rows.Err()
}

func firstExisting(cols map[string]struct{}, candidates []string) string {
	for _, c := range candidates {
		if _, ok := cols[c]; ok {
			return c
		}
	}
	return ""
}

func (db *DB) fetchText(ctx context.Context, src *textSource, id int64) string {
	if src == nil {
		return ""
	}
	// Identifiers come from the fixed candidate lists above, never from
	// user input.
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, src.textCol, src.table, src.idCol)

	var text *string
	if err := db.pool.QueryRow(ctx, query, id).Scan(&text); err != nil {
		return ""
	}
	if text == nil {
		return ""
	}
	return *text
}
