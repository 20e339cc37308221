package overrides

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/gap-analyzer/internal/types"
)

// Config identifies which requirements fact-based overrides may touch and
// the threshold the years fact must meet.
type Config struct {
	// DegreeRequirementIDs are requirement IDs satisfied by a detected
	// bachelor-level degree.
	DegreeRequirementIDs []string
	// YearsRequirementIDs are requirement IDs satisfied by a career span of
	// at least YearsThreshold years.
	YearsRequirementIDs []string
	// YearsThreshold is the minimum inferred span, in years, for the years
	// override to fire.
	YearsThreshold int
}

// DefaultConfig returns the standard override targets.
func DefaultConfig() Config {
	return Config{
		DegreeRequirementIDs: []string{"REQ-009"},
		YearsRequirementIDs:  []string{"REQ-010"},
		YearsThreshold:       15,
	}
}

const (
	matchStrengthFloor    = 0.85
	matchStrengthPctFloor = 85
	degreeConfidenceFloor = 0.75
	yearsConfidenceFloor  = 0.70
)

// Engine applies deterministic fact-based overrides to an analysis result.
// Apply mutates classifications in place; callers must Rebucket the result
// afterward, since bucket membership and the summary line go stale as soon
// as any classification changes.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine returns an Engine with the given config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, logger: zap.NewNop()}
}

// WithLogger sets the logger used for override audit logging.
func (e *Engine) WithLogger(logger *zap.Logger) *Engine {
	e.logger = logger
	return e
}

// Apply upgrades targeted requirements whose facts hold in resumeText,
// returning one audit record per mutation. Requirements already classified
// as a match are left untouched, so a second pass over the same result
// yields no records.
func (e *Engine) Apply(result *types.GapAnalysisResult, resumeText string) []types.OverrideRecord {
	if result == nil {
		return nil
	}

	var records []types.OverrideRecord

	if HasBachelors(resumeText) {
		for _, id := range e.cfg.DegreeRequirementIDs {
			if rec := e.upgrade(result, id, degreeConfidenceFloor, "degree_detected"); rec != nil {
				records = append(records, *rec)
			}
		}
	}

	if years := YearsExperience(resumeText); years != nil && *years >= e.cfg.YearsThreshold {
		reason := fmt.Sprintf("years_detected(%d)", *years)
		for _, id := range e.cfg.YearsRequirementIDs {
			if rec := e.upgrade(result, id, yearsConfidenceFloor, reason); rec != nil {
				records = append(records, *rec)
			}
		}
	}

	return records
}

// upgrade forces the identified requirement to a match, raising strength and
// confidence to their floors. It returns nil when the requirement is absent
// or already a match.
func (e *Engine) upgrade(result *types.GapAnalysisResult, requirementID string, confidenceFloor float64, reason string) *types.OverrideRecord {
	var target *types.MatchResult
	for _, r := range result.AllResults {
		if r.RequirementID == requirementID {
			target = r
			break
		}
	}
	if target == nil || target.Classification == types.ClassificationMatch {
		return nil
	}

	target.Classification = types.ClassificationMatch
	if target.MatchStrength < matchStrengthFloor {
		target.MatchStrength = matchStrengthFloor
	}
	if target.MatchStrengthPct < matchStrengthPctFloor {
		target.MatchStrengthPct = matchStrengthPctFloor
	}
	if target.Confidence < confidenceFloor {
		target.Confidence = confidenceFloor
	}
	target.MissingSignals = nil
	target.FollowupQuestion = ""

	e.logger.Info("override applied",
		zap.String("requirement_id", requirementID),
		zap.String("reason", reason))

	return &types.OverrideRecord{
		RequirementID:     requirementID,
		Reason:            reason,
		NewClassification: types.ClassificationMatch,
	}
}
