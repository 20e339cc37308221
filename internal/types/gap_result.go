package types

import "fmt"

// Classification buckets for a requirement.
const (
	ClassificationMatch     = "match"
	ClassificationPartial   = "partial"
	ClassificationGap       = "gap"
	ClassificationSignalGap = "signal_gap"
)

// EvidenceCitation is one citable quote backing a classification.
type EvidenceCitation struct {
	EvidenceID    string  `json:"evidence_id"`
	SourceType    string  `json:"source_type"`
	SourceName    string  `json:"source_name"`
	Section       string  `json:"section"`
	Quote         string  `json:"quote"` // truncated to 600 chars
	MatchStrength float64 `json:"match_strength"`
	Rationale     string  `json:"rationale"`
}

// MatchResult is the outcome for a single requirement. MatchStrength is the
// raw hybrid score and may exceed 1.0 (up to 1.25); MatchStrengthPct is the
// display value, clamped to [0,1] before rounding to a percent.
type MatchResult struct {
	RequirementID    string             `json:"requirement_id"`
	Category         string             `json:"category"`
	Competency       string             `json:"competency"`
	Text             string             `json:"text"`
	Weight           int                `json:"weight"`
	MustHave         bool               `json:"must_have"`
	Classification   string             `json:"classification"`
	MatchStrength    float64            `json:"match_strength"`
	MatchStrengthPct int                `json:"match_strength_pct"`
	Evidence         []EvidenceCitation `json:"evidence"`
	MissingSignals   []string           `json:"missing_signals"`
	FollowupQuestion string             `json:"followup_question"`
	Confidence       float64            `json:"confidence"`
}

// GapAnalysisResult is the full analysis for one (resume, job) pair.
//
// Invariant: the four bucket slices must always be a partition of AllResults
// by current classification. The buckets hold pointers into AllResults, so
// any mutation of a classification requires an explicit rebucket before the
// result is considered valid again.
type GapAnalysisResult struct {
	OverallAlignmentScore int            `json:"overall_alignment_score"` // 0-100
	Summary               string         `json:"summary"`
	RequirementsTotal     int            `json:"requirements_total"`
	MatchedRequirements   []*MatchResult `json:"matched_requirements"`
	PartialGaps           []*MatchResult `json:"partial_gaps"`
	HardGaps              []*MatchResult `json:"hard_gaps"`
	SignalGaps            []*MatchResult `json:"signal_gaps"`
	AllResults            []*MatchResult `json:"all_results"`
}

// SummaryLine renders the canonical one-line human summary for a result.
func SummaryLine(score, matches, partial, gaps, signalGaps int) string {
	return fmt.Sprintf(
		"Overall grounded alignment: %d/100. Matches: %d, Partial: %d, Gaps: %d, Signal gaps: %d.",
		score, matches, partial, gaps, signalGaps)
}

// OverrideRecord is one audit entry produced by the objective override pass.
type OverrideRecord struct {
	RequirementID     string `json:"requirement_id"`
	Reason            string `json:"reason"`
	NewClassification string `json:"new_classification"`
}
