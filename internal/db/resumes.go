package db

import (
	"context"
	"fmt"
)

// JobPosting holds the metadata stored alongside a job description.
type JobPosting struct {
	Company     string
	Title       string
	Location    string
	URL         string
	Description string
}

// SaveResume stores raw resume text and returns the new resume ID.
func (db *DB) SaveResume(ctx context.Context, source, rawText string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (source, raw_text) VALUES ($1, $2) RETURNING id`,
		source, rawText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// SaveJob stores a job posting and returns the new job ID.
func (db *DB) SaveJob(ctx context.Context, job JobPosting) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (company, title, location, url, description)
		 VALUES (NULLIF($1, ''), NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5)
		 RETURNING id`,
		job.Company, job.Title, job.Location, job.URL, job.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save job: %w", err)
	}
	return id, nil
}
