// Package classification maps match scores to classification buckets and
// score contributions.
package classification

import "github.com/jonathan/gap-analyzer/internal/types"

// Thresholds are the classification cutoffs applied to a requirement's top
// match score. The score may exceed 1.0 (up to 1.25); thresholds apply to
// the raw value.
type Thresholds struct {
	Match   float64
	Partial float64
}

// Contributions are the per-classification score scalars, multiplied by
// requirement weight when aggregating.
type Contributions struct {
	Match     float64
	Partial   float64
	Gap       float64
	SignalGap float64
}

// DefaultThresholds returns the fixed design constants: ≥0.65 match,
// ≥0.35 partial, below that gap or signal_gap.
func DefaultThresholds() Thresholds {
	return Thresholds{Match: 0.65, Partial: 0.35}
}

// DefaultContributions returns the fixed design constants: matches earn full
// weight, partials half, must-have gaps a light penalty, signal gaps nothing.
func DefaultContributions() Contributions {
	return Contributions{Match: 1.0, Partial: 0.5, Gap: -0.25, SignalGap: 0}
}

// Classifier is an immutable classification table. Construct with
// NewClassifier; the zero value classifies everything as a gap.
type Classifier struct {
	thresholds    Thresholds
	contributions Contributions
}

// NewClassifier returns a classifier with the default constants.
func NewClassifier() *Classifier {
	return &Classifier{
		thresholds:    DefaultThresholds(),
		contributions: DefaultContributions(),
	}
}

// Classify maps a top match score and must-have flag to a classification.
func (c *Classifier) Classify(matchStrength float64, mustHave bool) string {
	switch {
	case matchStrength >= c.thresholds.Match:
		return types.ClassificationMatch
	case matchStrength >= c.thresholds.Partial:
		return types.ClassificationPartial
	case mustHave:
		return types.ClassificationGap
	default:
		return types.ClassificationSignalGap
	}
}

// Contribution returns the weighted score contribution for a classification.
func (c *Classifier) Contribution(classification string, weight int) float64 {
	w := float64(weight)
	switch classification {
	case types.ClassificationMatch:
		return c.contributions.Match * w
	case types.ClassificationPartial:
		return c.contributions.Partial * w
	case types.ClassificationGap:
		return c.contributions.Gap * w
	default:
		return c.contributions.SignalGap * w
	}
}
