package classification

import (
	"testing"

	"github.com/jonathan/gap-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ThresholdBoundaries(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		score    float64
		mustHave bool
		want     string
	}{
		{"exactly match threshold", 0.65, true, types.ClassificationMatch},
		{"just under match threshold", 0.649, true, types.ClassificationPartial},
		{"exactly partial threshold", 0.35, true, types.ClassificationPartial},
		{"just under partial must-have", 0.349, true, types.ClassificationGap},
		{"just under partial optional", 0.349, false, types.ClassificationSignalGap},
		{"zero must-have", 0.0, true, types.ClassificationGap},
		{"zero optional", 0.0, false, types.ClassificationSignalGap},
		{"above one still match", 1.25, false, types.ClassificationMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.score, tt.mustHave))
		})
	}
}

func TestContribution_ScoreSignLaw(t *testing.T) {
	c := NewClassifier()

	for _, weight := range []int{1, 3} {
		w := float64(weight)
		assert.InDelta(t, 1.0*w, c.Contribution(types.ClassificationMatch, weight), 1e-9)
		assert.InDelta(t, 0.5*w, c.Contribution(types.ClassificationPartial, weight), 1e-9)
		assert.InDelta(t, -0.25*w, c.Contribution(types.ClassificationGap, weight), 1e-9)
		assert.InDelta(t, 0.0, c.Contribution(types.ClassificationSignalGap, weight), 1e-9)
	}
}
