package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gap-analyzer/internal/types"
)

func result(score int, rs ...*types.MatchResult) *types.GapAnalysisResult {
	return &types.GapAnalysisResult{OverallAlignmentScore: score, AllResults: rs}
}

func req(id, competency, classification string, weight int, mustHave bool) *types.MatchResult {
	return &types.MatchResult{
		RequirementID:  id,
		Competency:     competency,
		Classification: classification,
		Weight:         weight,
		MustHave:       mustHave,
	}
}

func TestScore_Disabled(t *testing.T) {
	out := Score(result(50, req("REQ-001", "executive_comms", types.ClassificationMatch, 3, true)), false, 0)

	assert.False(t, out.Enabled)
	assert.Equal(t, 0, out.Adjustment)
	assert.Nil(t, out.ExecWeightedScore)
}

func TestScore_NoResults(t *testing.T) {
	out := Score(result(50), true, 0)

	assert.True(t, out.Enabled)
	assert.Equal(t, 0, out.Adjustment)
	assert.Nil(t, out.ExecWeightedScore)
}

func TestScore_WeightedAverage(t *testing.T) {
	// executive_comms: eff 3*2.0=6.0, match -> earned 6.0
	// general: eff 1*0.6=0.6, gap -> earned 0.0
	// weighted = 6.0/6.6*100 = 90.9 -> 91; base 80 -> raw adj 11 -> clamped 8
	out := Score(result(80,
		req("REQ-001", "executive_comms", types.ClassificationMatch, 3, true),
		req("REQ-002", "general", types.ClassificationGap, 1, false),
	), true, 0)

	require.NotNil(t, out.ExecWeightedScore)
	assert.Equal(t, 91, *out.ExecWeightedScore)
	assert.Equal(t, 8, out.Adjustment)
	assert.Equal(t, 80, out.BaseGroundedScore)
	assert.Contains(t, out.Notes, "bounded adjustment")
}

func TestScore_NegativeClamp(t *testing.T) {
	// Only a general match at 0.6 mult vs an exec gap: weighted well below base.
	out := Score(result(90,
		req("REQ-001", "financial_comms", types.ClassificationGap, 3, false),
		req("REQ-002", "general", types.ClassificationMatch, 1, false),
	), true, 0)

	// earned 0.6, total 6.6 -> 9; raw adj -81 -> clamped to -8.
	require.NotNil(t, out.ExecWeightedScore)
	assert.Equal(t, 9, *out.ExecWeightedScore)
	assert.Equal(t, -8, out.Adjustment)
}

func TestScore_MustHaveExecGapsCapUpside(t *testing.T) {
	// Two must-have exec gaps with an otherwise strong weighted score.
	out := Score(result(30,
		req("REQ-001", "executive_comms", types.ClassificationGap, 3, true),
		req("REQ-002", "financial_comms", types.ClassificationGap, 3, true),
		req("REQ-003", "corporate_narrative", types.ClassificationMatch, 3, true),
		req("REQ-004", "product_comms", types.ClassificationMatch, 3, true),
	), true, 0)

	// earned 3*1.6 + 3*1.4 = 9.0; total 6+6+4.8+4.2 = 21.0 -> 43; raw adj 13
	// capped to +2 by the open must-have exec gaps.
	require.NotNil(t, out.ExecWeightedScore)
	assert.Equal(t, 43, *out.ExecWeightedScore)
	assert.Equal(t, 2, out.Adjustment)
	assert.Contains(t, out.Notes, "must-have executive gaps present; capped positive adjustment")
}

func TestScore_SignalGapPartialCredit(t *testing.T) {
	out := Score(result(25,
		req("REQ-001", "regulated_healthcare", types.ClassificationSignalGap, 2, false),
	), true, 0)

	// earned 2*1.2*0.25 = 0.6; total 2.4 -> 25; adjustment 0.
	require.NotNil(t, out.ExecWeightedScore)
	assert.Equal(t, 25, *out.ExecWeightedScore)
	assert.Equal(t, 0, out.Adjustment)
}

func TestScore_SignalsOnlyListedCompetencies(t *testing.T) {
	out := Score(result(50,
		req("REQ-001", "executive_comms", types.ClassificationMatch, 3, true),
		req("REQ-002", "general", types.ClassificationMatch, 1, false),
		req("REQ-003", "", types.ClassificationPartial, 1, false),
	), true, 0)

	require.Len(t, out.Signals, 1)
	assert.Equal(t, "REQ-001", out.Signals[0].RequirementID)
	assert.Equal(t, 6.0, out.Signals[0].EffectiveWeight)
}

func TestScore_SignalsCapped(t *testing.T) {
	rs := make([]*types.MatchResult, 0, 40)
	for i := 0; i < 40; i++ {
		rs = append(rs, req(types.FormatRequirementID(i+1), "executive_comms", types.ClassificationMatch, 1, false))
	}
	out := Score(result(100, rs...), true, 0)

	assert.Len(t, out.Signals, maxSignals)
}

func TestScore_ZeroWeightDefaultsToOne(t *testing.T) {
	out := Score(result(0,
		req("REQ-001", "executive_comms", types.ClassificationMatch, 0, false),
	), true, 0)

	require.NotNil(t, out.ExecWeightedScore)
	assert.Equal(t, 100, *out.ExecWeightedScore)
	require.Len(t, out.Signals, 1)
	assert.Equal(t, 2.0, out.Signals[0].EffectiveWeight)
}
