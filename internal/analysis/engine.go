// Package analysis orchestrates a full grounded gap analysis: requirement
// extraction, evidence matching, classification, aggregation, and
// persistence for one (resume, job) pair.
package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/gap-analyzer/internal/classification"
	"github.com/jonathan/gap-analyzer/internal/extraction"
	"github.com/jonathan/gap-analyzer/internal/matching"
	"github.com/jonathan/gap-analyzer/internal/overrides"
	"github.com/jonathan/gap-analyzer/internal/types"
)

// DefaultEvidenceLimit bounds how many cached evidence chunks one run loads.
const DefaultEvidenceLimit = 5000

const (
	maxQuoteChars      = 600
	followupTemplate   = "Provide a specific example demonstrating '%s'. Include scope (team/budget), stakeholders, and measurable outcomes."
	confidenceBase     = 0.35
	confidencePerScore = 0.5
	scoreFloorOffset   = 0.25
	scoreRange         = 1.25
)

// EvidenceStore loads cached evidence chunks scoped to a resume and,
// optionally, a job.
type EvidenceStore interface {
	QueryEvidence(ctx context.Context, resumeID int64, jobID *int64, limit int) ([]*types.EvidenceChunk, error)
}

// ResultStore persists an analysis result, replacing any prior result for
// the same (resume, job) pair.
type ResultStore interface {
	SaveGapResult(ctx context.Context, resumeID, jobID int64, result *types.GapAnalysisResult) error
}

// Request describes one analysis run.
type Request struct {
	ResumeID       int64  `validate:"required,gt=0"`
	JobID          int64  `validate:"required,gt=0"`
	JobDescription string `validate:"required"`
	// EvidenceLimit caps loaded evidence; 0 means DefaultEvidenceLimit.
	EvidenceLimit int `validate:"gte=0"`
}

// Engine composes the extraction, matching, and classification components
// into one deterministic pipeline over stored evidence.
type Engine struct {
	evidence   EvidenceStore
	results    ResultStore
	extractor  *extraction.Extractor
	matcher    *matching.Matcher
	classifier *classification.Classifier
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewEngine builds an engine. The result store may be nil, in which case Run
// skips persistence and only returns the result.
func NewEngine(evidence EvidenceStore, results ResultStore, extractor *extraction.Extractor, matcher *matching.Matcher) *Engine {
	return &Engine{
		evidence:   evidence,
		results:    results,
		extractor:  extractor,
		matcher:    matcher,
		classifier: classification.NewClassifier(),
		validate:   validator.New(),
		logger:     zap.NewNop(),
	}
}

// WithLogger attaches structured logging to the engine.
func (e *Engine) WithLogger(logger *zap.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// Run extracts requirements from the job description, matches each against
// the cached evidence for (resume, job), classifies and aggregates, persists
// the result, and returns it.
func (e *Engine) Run(ctx context.Context, req Request) (*types.GapAnalysisResult, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid analysis request: %w", err)
	}

	limit := req.EvidenceLimit
	if limit == 0 {
		limit = DefaultEvidenceLimit
	}

	requirements := e.extractor.Extract(req.JobDescription)

	jobID := req.JobID
	evidence, err := e.evidence.QueryEvidence(ctx, req.ResumeID, &jobID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load evidence: %w", err)
	}

	e.logger.Info("analysis started",
		zap.Int64("resume_id", req.ResumeID),
		zap.Int64("job_id", req.JobID),
		zap.Int("requirements", len(requirements)),
		zap.Int("evidence_chunks", len(evidence)))

	// Non-nil so an empty result set serializes as [] and stays valid
	// under the persisted-result schema.
	results := make([]*types.MatchResult, 0, len(requirements))

	var (
		totalWeight int
		scoreAccum  float64
	)

	for _, r := range requirements {
		if r.Text == "" {
			continue
		}

		candidates := e.matcher.Match(ctx, r, evidence)

		topScore := 0.0
		if len(candidates) > 0 {
			topScore = candidates[0].Score
		}
		class := e.classifier.Classify(topScore, r.MustHave)

		totalWeight += r.Weight
		scoreAccum += e.classifier.Contribution(class, r.Weight)

		results = append(results, buildMatchResult(r, class, topScore, candidates))
	}

	result := &types.GapAnalysisResult{
		OverallAlignmentScore: overallScore(scoreAccum, totalWeight),
		RequirementsTotal:     len(results),
		AllResults:            results,
	}
	overrides.Rebucket(result)

	if e.results != nil {
		if err := e.results.SaveGapResult(ctx, req.ResumeID, req.JobID, result); err != nil {
			return nil, fmt.Errorf("failed to persist gap result: %w", err)
		}
	}

	e.logger.Info("analysis complete",
		zap.Int64("resume_id", req.ResumeID),
		zap.Int64("job_id", req.JobID),
		zap.Int("overall_score", result.OverallAlignmentScore),
		zap.Int("matches", len(result.MatchedRequirements)),
		zap.Int("gaps", len(result.HardGaps)))

	return result, nil
}

func buildMatchResult(r types.Requirement, class string, topScore float64, candidates []matching.Candidate) *types.MatchResult {
	citations := make([]types.EvidenceCitation, 0, len(candidates))
	for _, c := range candidates {
		citations = append(citations, types.EvidenceCitation{
			EvidenceID:    c.Evidence.ID,
			SourceType:    c.Evidence.SourceType,
			SourceName:    c.Evidence.SourceName,
			Section:       c.Evidence.Section,
			Quote:         truncateRunes(c.Evidence.ChunkText, maxQuoteChars),
			MatchStrength: c.Score,
			Rationale:     c.Rationale,
		})
	}

	var missing []string
	if class == types.ClassificationGap || class == types.ClassificationSignalGap {
		missing = []string{r.Competency}
	}

	followup := ""
	if class != types.ClassificationMatch {
		followup = fmt.Sprintf(followupTemplate, r.Text)
	}

	return &types.MatchResult{
		RequirementID:    r.RequirementID,
		Category:         r.Category,
		Competency:       r.Competency,
		Text:             r.Text,
		Weight:           r.Weight,
		MustHave:         r.MustHave,
		Classification:   class,
		MatchStrength:    topScore,
		MatchStrengthPct: toPct(topScore),
		Evidence:         citations,
		MissingSignals:   missing,
		FollowupQuestion: followup,
		Confidence:       math.Min(1.0, confidenceBase+confidencePerScore*topScore),
	}
}

// overallScore maps the accumulated weighted contributions, which range
// roughly over [-0.25, 1.0] per unit weight, onto 0-100.
func overallScore(scoreAccum float64, totalWeight int) int {
	if totalWeight <= 0 {
		return 0
	}
	raw := scoreAccum / float64(totalWeight)
	overall := int(math.Round((raw + scoreFloorOffset) / scoreRange * 100))
	if overall < 0 {
		return 0
	}
	if overall > 100 {
		return 100
	}
	return overall
}

func toPct(score float64) int {
	clamped := math.Max(0.0, math.Min(1.0, score))
	return int(math.Round(clamped * 100))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
