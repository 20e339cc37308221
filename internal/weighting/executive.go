// Package weighting computes an advisory, competency-weighted rescore of a
// gap analysis result. It never mutates the primary result; the output is a
// side-channel adjustment the caller may surface alongside the grounded
// score.
package weighting

import "github.com/jonathan/gap-analyzer/internal/types"

// Senior communications roles are judged mostly on a handful of
// competencies; everything else is weighted down.
var execMultipliers = map[string]float64{
	"executive_comms":      2.0,
	"financial_comms":      2.0,
	"corporate_narrative":  1.6,
	"product_comms":        1.4,
	"regulated_healthcare": 1.2,
}

// generalMultiplier keeps unlisted competencies from dominating the rescore.
const generalMultiplier = 0.6

var classScores = map[string]float64{
	types.ClassificationMatch:     1.00,
	types.ClassificationPartial:   0.60,
	types.ClassificationGap:       0.00,
	types.ClassificationSignalGap: 0.25,
}

const (
	// DefaultMaxAbsAdjustment bounds how far the advisory adjustment may
	// move from the grounded score in either direction.
	DefaultMaxAbsAdjustment = 8
	// cappedUpside limits positive adjustments while must-have executive
	// gaps remain open.
	cappedUpside = 2
	// maxSignals bounds the contributing-signal payload.
	maxSignals = 30
)

// Signal records one executive-competency requirement contributing to the
// weighted score.
type Signal struct {
	RequirementID   string  `json:"requirement_id"`
	Competency      string  `json:"competency"`
	Classification  string  `json:"classification"`
	Weight          int     `json:"weight"`
	EffectiveWeight float64 `json:"eff_weight"`
}

// Outcome is the advisory result of the weighted rescore. ExecWeightedScore
// is nil when the pass is disabled or no scorable requirements exist.
type Outcome struct {
	Enabled           bool     `json:"enabled"`
	ExecWeightedScore *int     `json:"exec_weighted_score"`
	Adjustment        int      `json:"adjustment"`
	BaseGroundedScore int      `json:"base_grounded_score"`
	Notes             []string `json:"notes,omitempty"`
	Signals           []Signal `json:"exec_signals,omitempty"`
}

// Score recomputes an executive-weighted alignment score over all results
// and returns a bounded adjustment relative to the grounded overall score.
// When enabled is false the outcome carries adjustment 0 so callers can
// apply it unconditionally.
func Score(result *types.GapAnalysisResult, enabled bool, maxAbsAdjustment int) Outcome {
	if !enabled || result == nil {
		return Outcome{Notes: []string{"exec weighting disabled"}}
	}
	if len(result.AllResults) == 0 {
		return Outcome{Enabled: true, Notes: []string{"no results to weight"}}
	}
	if maxAbsAdjustment <= 0 {
		maxAbsAdjustment = DefaultMaxAbsAdjustment
	}

	var (
		totalWeight      float64
		earned           float64
		mustHaveExecGaps int
		signals          []Signal
	)

	for _, r := range result.AllResults {
		competency := r.Competency
		if competency == "" {
			competency = types.CompetencyGeneral
		}
		weight := float64(r.Weight)
		if weight <= 0 {
			weight = 1.0
		}

		multiplier, listed := execMultipliers[competency]
		if !listed {
			multiplier = generalMultiplier
		}
		effective := weight * multiplier

		totalWeight += effective
		earned += effective * classScores[r.Classification]

		if r.MustHave && r.Classification == types.ClassificationGap && listed {
			mustHaveExecGaps++
		}
		if listed && len(signals) < maxSignals {
			signals = append(signals, Signal{
				RequirementID:   r.RequirementID,
				Competency:      competency,
				Classification:  r.Classification,
				Weight:          r.Weight,
				EffectiveWeight: effective,
			})
		}
	}

	if totalWeight <= 0 {
		return Outcome{Enabled: true, Notes: []string{"zero total weight"}}
	}

	weighted := int(earned/totalWeight*100 + 0.5)
	base := result.OverallAlignmentScore
	rawAdj := weighted - base

	var notes []string
	if mustHaveExecGaps >= 2 && rawAdj > 0 {
		if rawAdj > cappedUpside {
			rawAdj = cappedUpside
		}
		notes = append(notes, "must-have executive gaps present; capped positive adjustment")
	}

	adj := rawAdj
	if adj > maxAbsAdjustment {
		adj = maxAbsAdjustment
	} else if adj < -maxAbsAdjustment {
		adj = -maxAbsAdjustment
	}
	if adj != rawAdj {
		notes = append(notes, "bounded adjustment")
	}

	score := weighted
	return Outcome{
		Enabled:           true,
		ExecWeightedScore: &score,
		Adjustment:        adj,
		BaseGroundedScore: base,
		Notes:             notes,
		Signals:           signals,
	}
}
