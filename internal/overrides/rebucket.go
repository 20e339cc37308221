package overrides

import "github.com/jonathan/gap-analyzer/internal/types"

// Rebucket rebuilds the four classification buckets and the summary line
// from AllResults. Any pass that mutates classifications must call it before
// the result is read again; unknown classification strings land in the
// signal-gap bucket so no requirement silently drops out of the partition.
// Buckets are always non-nil so an empty bucket serializes as [] rather
// than null, which the persisted-result schema requires.
func Rebucket(result *types.GapAnalysisResult) {
	if result == nil {
		return
	}

	result.MatchedRequirements = make([]*types.MatchResult, 0)
	result.PartialGaps = make([]*types.MatchResult, 0)
	result.HardGaps = make([]*types.MatchResult, 0)
	result.SignalGaps = make([]*types.MatchResult, 0)

	for _, r := range result.AllResults {
		switch r.Classification {
		case types.ClassificationMatch:
			result.MatchedRequirements = append(result.MatchedRequirements, r)
		case types.ClassificationPartial:
			result.PartialGaps = append(result.PartialGaps, r)
		case types.ClassificationGap:
			result.HardGaps = append(result.HardGaps, r)
		default:
			result.SignalGaps = append(result.SignalGaps, r)
		}
	}

	result.Summary = types.SummaryLine(
		result.OverallAlignmentScore,
		len(result.MatchedRequirements),
		len(result.PartialGaps),
		len(result.HardGaps),
		len(result.SignalGaps))
}
