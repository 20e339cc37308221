package db

import (
	"context"
	"fmt"
	"strings"
)

// PortfolioItem is one stored piece of supporting material for a resume.
type PortfolioItem struct {
	ID         int64
	ResumeID   int64
	JobID      *int64
	SourceName string
	SourceType string // "paste" | "url" | "doc"
	URL        string
	RawText    string
}

// SavePortfolioItem stores portfolio text and returns the new item ID.
// Empty text is rejected rather than stored.
func (db *DB) SavePortfolioItem(ctx context.Context, item PortfolioItem) (int64, error) {
	text := strings.TrimSpace(item.RawText)
	if text == "" {
		return 0, fmt.Errorf("portfolio raw text is empty")
	}
	if item.SourceName == "" {
		item.SourceName = "Portfolio (pasted)"
	}
	if item.SourceType == "" {
		item.SourceType = "paste"
	}

	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO portfolio_items (resume_id, job_id, source_name, source_type, url, raw_text)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		 RETURNING id`,
		item.ResumeID, item.JobID, item.SourceName, item.SourceType, item.URL, text,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save portfolio item: %w", err)
	}
	return id, nil
}

// GetPortfolioTexts returns the non-empty portfolio texts for a resume,
// newest first. With a non-nil jobID, job-specific and cross-job items both
// qualify.
func (db *DB) GetPortfolioTexts(ctx context.Context, resumeID int64, jobID *int64, limit int) ([]string, error) {
	var (
		query string
		args  []any
	)
	if jobID == nil {
		query = `SELECT raw_text FROM portfolio_items
			 WHERE resume_id = $1
			 ORDER BY created_at DESC LIMIT $2`
		args = []any{resumeID, limit}
	} else {
		query = `SELECT raw_text FROM portfolio_items
			 WHERE resume_id = $1 AND (job_id = $2 OR job_id IS NULL)
			 ORDER BY created_at DESC LIMIT $3`
		args = []any{resumeID, *jobID, limit}
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		if t := strings.TrimSpace(text); t != "" {
			texts = append(texts, t)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read portfolio items: %w", err)
	}
	return texts, nil
}
