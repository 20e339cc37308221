package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gap-analyzer/internal/types"
)

const degreeResume = `Jane Doe
Bachelor of Science, Communications
Northwestern University, 2004
Led corporate communications from 2008 to 2024.`

func TestHasBachelors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"full phrase", "Bachelor of Arts, State University", true},
		{"bs abbreviation", "B.S. in Marketing from Boston College", true},
		{"ba abbreviation", "BA, Yale University", true},
		{"degree without institution", "Bachelor of Science in Biology", false},
		{"institution without degree", "Attended Stanford University", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasBachelors(tt.text))
		})
	}
}

func TestYearsExperience(t *testing.T) {
	t.Run("span from distinct years", func(t *testing.T) {
		got := YearsExperience("VP Comms 2008-2024, Director 2003-2008")
		require.NotNil(t, got)
		assert.Equal(t, 21, *got)
	})

	t.Run("single year is not a span", func(t *testing.T) {
		assert.Nil(t, YearsExperience("Graduated in 2010"))
	})

	t.Run("repeated year is not a span", func(t *testing.T) {
		assert.Nil(t, YearsExperience("2015 was busy; again in 2015"))
	})

	t.Run("implausible years ignored", func(t *testing.T) {
		assert.Nil(t, YearsExperience("Founded 1865, renovated 2031"))
	})

	t.Run("no years", func(t *testing.T) {
		assert.Nil(t, YearsExperience("no dates here"))
	})
}

func gapResult() *types.GapAnalysisResult {
	all := []*types.MatchResult{
		{
			RequirementID:  "REQ-001",
			Classification: types.ClassificationMatch,
			MatchStrength:  0.9, MatchStrengthPct: 90, Confidence: 0.8,
		},
		{
			RequirementID:  "REQ-009",
			Competency:     "general",
			Classification: types.ClassificationGap,
			MatchStrength:  0.1, MatchStrengthPct: 10, Confidence: 0.4,
			MissingSignals:   []string{"general"},
			FollowupQuestion: "Provide a specific example.",
		},
		{
			RequirementID:  "REQ-010",
			Classification: types.ClassificationSignalGap,
			MatchStrength:  0.2, MatchStrengthPct: 20, Confidence: 0.45,
		},
	}
	result := &types.GapAnalysisResult{
		OverallAlignmentScore: 40,
		RequirementsTotal:     len(all),
		AllResults:            all,
	}
	Rebucket(result)
	return result
}

func TestApply_DegreeOverride(t *testing.T) {
	result := gapResult()
	engine := NewEngine(Config{
		DegreeRequirementIDs: []string{"REQ-009"},
		YearsThreshold:       15,
	})

	records := engine.Apply(result, degreeResume)

	require.Len(t, records, 1)
	assert.Equal(t, "REQ-009", records[0].RequirementID)
	assert.Equal(t, "degree_detected", records[0].Reason)
	assert.Equal(t, types.ClassificationMatch, records[0].NewClassification)

	target := result.AllResults[1]
	assert.Equal(t, types.ClassificationMatch, target.Classification)
	assert.GreaterOrEqual(t, target.MatchStrength, 0.85)
	assert.GreaterOrEqual(t, target.MatchStrengthPct, 85)
	assert.GreaterOrEqual(t, target.Confidence, 0.75)
	assert.Empty(t, target.MissingSignals)
	assert.Empty(t, target.FollowupQuestion)
}

func TestApply_SecondPassIsNoop(t *testing.T) {
	result := gapResult()
	engine := NewEngine(DefaultConfig())

	first := engine.Apply(result, degreeResume)
	require.NotEmpty(t, first)

	second := engine.Apply(result, degreeResume)
	assert.Empty(t, second)
}

func TestApply_YearsOverride(t *testing.T) {
	result := gapResult()
	engine := NewEngine(DefaultConfig())

	records := engine.Apply(result, "Career: started 2005, current role through 2024. No degree listed.")

	require.Len(t, records, 1)
	assert.Equal(t, "REQ-010", records[0].RequirementID)
	assert.Equal(t, "years_detected(19)", records[0].Reason)

	target := result.AllResults[2]
	assert.Equal(t, types.ClassificationMatch, target.Classification)
	assert.GreaterOrEqual(t, target.Confidence, 0.70)
}

func TestApply_BelowThresholdDoesNothing(t *testing.T) {
	result := gapResult()
	engine := NewEngine(DefaultConfig())

	records := engine.Apply(result, "Worked from 2015 through 2024.")
	assert.Empty(t, records)
	assert.Equal(t, types.ClassificationSignalGap, result.AllResults[2].Classification)
}

func TestApply_MissingRequirementID(t *testing.T) {
	result := gapResult()
	engine := NewEngine(Config{DegreeRequirementIDs: []string{"REQ-099"}, YearsThreshold: 15})

	records := engine.Apply(result, degreeResume)
	assert.Empty(t, records)
}

func TestRebucket_PartitionAndSummary(t *testing.T) {
	result := gapResult()
	engine := NewEngine(DefaultConfig())

	engine.Apply(result, degreeResume)
	Rebucket(result)

	assert.Len(t, result.MatchedRequirements, 3)
	assert.Empty(t, result.HardGaps)
	assert.Empty(t, result.SignalGaps)
	assert.Empty(t, result.PartialGaps)

	// Emptied buckets must stay non-nil so they serialize as [] and the
	// persisted result still passes schema validation on reload.
	assert.NotNil(t, result.HardGaps)
	assert.NotNil(t, result.SignalGaps)
	assert.NotNil(t, result.PartialGaps)

	total := len(result.MatchedRequirements) + len(result.PartialGaps) +
		len(result.HardGaps) + len(result.SignalGaps)
	assert.Equal(t, len(result.AllResults), total)

	assert.Equal(t,
		"Overall grounded alignment: 40/100. Matches: 3, Partial: 0, Gaps: 0, Signal gaps: 0.",
		result.Summary)
}

func TestRebucket_UnknownClassificationLandsInSignalGaps(t *testing.T) {
	result := &types.GapAnalysisResult{
		AllResults: []*types.MatchResult{{RequirementID: "REQ-001", Classification: "bogus"}},
	}
	Rebucket(result)
	assert.Len(t, result.SignalGaps, 1)
}
