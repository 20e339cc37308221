// Package types provides type definitions for structured data used throughout the gap-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Source types for evidence chunks.
const (
	SourceResume    = "resume"
	SourcePortfolio = "portfolio"
)

// EvidenceChunk is a bounded, tagged slice of resume or portfolio text
// stored for retrieval. Chunks are immutable once stored; re-ingesting
// identical text is a no-op under the content-hash uniqueness key.
type EvidenceChunk struct {
	ID          string   `json:"evidence_id"` // E-%06d, assigned by the store
	ResumeID    int64    `json:"resume_id"`
	JobID       *int64   `json:"job_id,omitempty"` // nil means usable across jobs
	SourceType  string   `json:"source_type"`      // "resume" | "portfolio"
	SourceName  string   `json:"source_name"`
	Section     string   `json:"section"`
	ChunkText   string   `json:"chunk_text"`
	Tags        []string `json:"tags"`
	Entities    Entities `json:"entities"`
	Signals     Signals  `json:"signals"`
	Confidence  float64  `json:"confidence"`
	ContentHash string   `json:"content_hash"`
}

// Entities holds structured entity mentions extracted from a chunk.
type Entities struct {
	Metrics []string `json:"metrics"`
}

// Signals holds scope and seniority signals extracted from a chunk.
type Signals struct {
	Scope     ScopeSignals     `json:"scope"`
	Seniority SenioritySignals `json:"seniority"`
}

// ScopeSignals captures team and budget scope mentions.
type ScopeSignals struct {
	TeamSize *int     `json:"team_size"`
	Budget   *float64 `json:"budget"`
}

// SenioritySignals captures tenure and executive-audience mentions.
type SenioritySignals struct {
	Years         *int `json:"years"`
	MentionsCEO   bool `json:"mentions_ceo"`
	MentionsCMO   bool `json:"mentions_cmo"`
	MentionsBoard bool `json:"mentions_board"`
}
