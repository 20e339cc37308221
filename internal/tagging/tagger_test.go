package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTagger() *Tagger {
	return NewTagger(DefaultLexicon())
}

func TestExtract_TagsAreSortedAndUnique(t *testing.T) {
	out := newTestTagger().Extract("Led crisis response during an FDA inquiry; crisis war room stand-up")

	assert.Equal(t, []string{"crisis_issues", "regulated_healthcare"}, out.Tags)
}

func TestExtract_NoTagsForUnrelatedText(t *testing.T) {
	out := newTestTagger().Extract("went hiking on saturday")

	assert.Empty(t, out.Tags)
	assert.Empty(t, out.Entities.Metrics)
	assert.InDelta(t, 0.35, out.Confidence, 1e-9)
}

func TestExtract_TeamSize(t *testing.T) {
	out := newTestTagger().Extract("managed 14 direct reports across two hubs")

	require.NotNil(t, out.Signals.Scope.TeamSize)
	assert.Equal(t, 14, *out.Signals.Scope.TeamSize)
}

func TestExtract_BudgetSuffixMultipliers(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"budget of $2.5m for the program", 2_500_000},
		{"budget 300k annually", 300_000},
		{"budget of 1b overall", 1_000_000_000},
		{"budget of 750 total", 750},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out := newTestTagger().Extract(tt.text)
			require.NotNil(t, out.Signals.Scope.Budget)
			assert.InDelta(t, tt.want, *out.Signals.Scope.Budget, 1e-6)
		})
	}
}

func TestExtract_YearsAndSeniorityFlags(t *testing.T) {
	out := newTestTagger().Extract("15+ years advising the CEO and the board")

	require.NotNil(t, out.Signals.Seniority.Years)
	assert.Equal(t, 15, *out.Signals.Seniority.Years)
	assert.True(t, out.Signals.Seniority.MentionsCEO)
	assert.True(t, out.Signals.Seniority.MentionsBoard)
	assert.False(t, out.Signals.Seniority.MentionsCMO)
}

func TestExtract_MetricsCurrencyAndMagnitudes(t *testing.T) {
	out := newTestTagger().Extract("protected $50M brand value and grew reach to 300k subscribers")

	assert.Contains(t, out.Entities.Metrics, "$50M")
	assert.Contains(t, out.Entities.Metrics, "300k")
}

func TestExtract_ConfidenceFormula(t *testing.T) {
	// Two tags, metrics present, team size present:
	// 0.35 + 0.08*2 + 0.10 + 0.10 = 0.71
	out := newTestTagger().Extract("Led 12 through an FDA crisis, protecting $50M in brand value")

	require.Len(t, out.Tags, 2)
	require.NotEmpty(t, out.Entities.Metrics)
	require.NotNil(t, out.Signals.Scope.TeamSize)
	assert.InDelta(t, 0.71, out.Confidence, 1e-9)
}

func TestExtract_TagContributionIsCapped(t *testing.T) {
	// Text hitting many lexicon entries: tag contribution caps at 0.35.
	text := "crisis press earnings launch keynote reputation metrics agency partner messaging ceo healthcare public policy"
	out := newTestTagger().Extract(text)

	require.GreaterOrEqual(t, len(out.Tags), 5)
	assert.LessOrEqual(t, out.Confidence, 1.0)
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Led crisis response team of 12 during FDA inquiry, protected $50M brand value"

	first := newTestTagger().Extract(text)
	second := newTestTagger().Extract(text)

	assert.Equal(t, first.Tags, second.Tags)
	assert.Equal(t, first.Entities, second.Entities)
	assert.Equal(t, first.Signals, second.Signals)
	assert.Equal(t, first.Confidence, second.Confidence)
}
