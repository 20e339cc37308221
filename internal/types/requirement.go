package types

import "fmt"

// Requirement categories.
const (
	CategoryRequired  = "required"
	CategoryPreferred = "preferred"
)

// CompetencyGeneral is the fallback competency when no lexicon tag applies.
const CompetencyGeneral = "general"

// Requirement is a structured, weighted obligation extracted from a job
// description. Requirement IDs are sequential in document order and stable
// within one extraction pass.
type Requirement struct {
	RequirementID string `json:"requirement_id"` // REQ-%03d
	Category      string `json:"category"`       // "required" | "preferred"
	Competency    string `json:"competency"`     // single tag or "general"
	Text          string `json:"text"`
	Weight        int    `json:"weight"` // 3 for must-haves, otherwise 1
	MustHave      bool   `json:"must_have"`
}

// FormatRequirementID renders the canonical REQ-%03d identifier for a
// 1-based document-order sequence number.
func FormatRequirementID(seq int) string {
	return fmt.Sprintf("REQ-%03d", seq)
}

// FormatEvidenceID renders the canonical E-%06d identifier for a stored
// evidence row.
func FormatEvidenceID(rowID int64) string {
	return fmt.Sprintf("E-%06d", rowID)
}
