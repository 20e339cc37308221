package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/gap-analyzer/internal/tagging"
	"github.com/jonathan/gap-analyzer/internal/types"
	"go.uber.org/zap"
)

const (
	// minCandidateScore discards noise matches.
	minCandidateScore = 0.05
	// maxScore caps the hybrid score; classification thresholds apply to
	// the uncapped-to-1 value, so the cap is above 1.0 deliberately.
	maxScore = 1.25
	// rerankDepth is how many lexical leaders get the semantic blend.
	rerankDepth = 30
	// defaultTopK is how many citations a match carries.
	defaultTopK = 3
	// semanticBlendWeight scales the semantic signal added to a base score.
	semanticBlendWeight = 0.35
	// strongSignalConfidence marks high-confidence evidence in rationales.
	strongSignalConfidence = 0.6
)

// Candidate is one scored piece of evidence for a requirement.
type Candidate struct {
	Evidence  *types.EvidenceChunk
	Score     float64
	Rationale string
}

// Matcher ranks evidence chunks for a requirement. The base score is
// deterministic (token Jaccard + tag overlap + evidence confidence); a
// SimilarityProvider may blend in a semantic signal for the top candidates.
type Matcher struct {
	tagger   *tagging.Tagger
	provider SimilarityProvider
	logger   *zap.Logger
	topK     int
}

// NewMatcher creates a matcher. Pass DisabledProvider to run lexical-only.
func NewMatcher(tagger *tagging.Tagger, provider SimilarityProvider) *Matcher {
	if provider == nil {
		provider = DisabledProvider{}
	}
	return &Matcher{tagger: tagger, provider: provider, logger: zap.NewNop(), topK: defaultTopK}
}

// WithLogger returns the matcher with structured logging attached.
func (m *Matcher) WithLogger(logger *zap.Logger) *Matcher {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Match scores every evidence chunk against the requirement and returns the
// top candidates in descending score order. Empty requirement text or an
// empty evidence set yields no candidates, not an error.
func (m *Matcher) Match(ctx context.Context, req types.Requirement, evidence []*types.EvidenceChunk) []Candidate {
	reqTokens := Tokenize(req.Text)

	reqTags := toSet(m.tagger.Tags(req.Text))
	if req.Competency != "" {
		reqTags[req.Competency] = struct{}{}
	}

	var scored []Candidate
	for _, e := range evidence {
		evTokens := Tokenize(e.ChunkText)
		tokSim := jaccard(reqTokens, evTokens)

		overlap := tagOverlap(reqTags, e.Tags)
		tagBonus := 0.0
		if len(overlap) > 0 {
			tagBonus = 0.20 + minFloat(0.20, 0.05*float64(len(overlap)))
		}

		confBonus := 0.10 * e.Confidence

		score := tokSim + tagBonus + confBonus
		if score < 0 {
			score = 0
		}
		if score > maxScore {
			score = maxScore
		}
		if score <= minCandidateScore {
			continue
		}

		scored = append(scored, Candidate{
			Evidence:  e,
			Score:     score,
			Rationale: buildRationale(tokSim, overlap, e.Confidence),
		})
	}

	sortByScore(scored)
	scored = m.semanticRerank(ctx, req.Text, scored)

	if len(scored) > m.topK {
		scored = scored[:m.topK]
	}
	return scored
}

// semanticRerank blends provider similarity into the top candidates and
// re-sorts. Any provider failure degrades silently to the lexical ranking.
func (m *Matcher) semanticRerank(ctx context.Context, reqText string, scored []Candidate) []Candidate {
	if len(scored) == 0 {
		return scored
	}

	n := rerankDepth
	if len(scored) < n {
		n = len(scored)
	}
	candidates := make([]string, n)
	for i := 0; i < n; i++ {
		candidates[i] = scored[i].Evidence.ChunkText
	}

	sims, err := m.provider.Similarity(ctx, reqText, candidates)
	if err != nil {
		m.logger.Debug("semantic rerank unavailable", zap.Error(err))
		return scored
	}
	if sims == nil {
		return scored
	}

	simByIdx := make(map[int]float64, len(sims))
	for _, s := range sims {
		simByIdx[s.Index] = s.Score
	}

	blended := make([]Candidate, n)
	for i := 0; i < n; i++ {
		c := scored[i]
		sem := clampUnit(simByIdx[i])
		c.Score = minFloat(maxScore, c.Score+semanticBlendWeight*sem)
		c.Rationale = c.Rationale + fmt.Sprintf("; semantic=%.2f", sem)
		blended[i] = c
	}
	sortByScore(blended)

	out := append(blended, scored[n:]...)
	sortByScore(out)
	return out
}

func buildRationale(tokSim float64, overlap []string, confidence float64) string {
	var parts []string
	if tokSim >= 0.10 {
		parts = append(parts, fmt.Sprintf("token_overlap=%.2f", tokSim))
	}
	if len(overlap) > 0 {
		parts = append(parts, fmt.Sprintf("tags=[%s]", strings.Join(overlap, " ")))
	}
	if confidence >= strongSignalConfidence {
		parts = append(parts, "strong_signal")
	}
	if len(parts) == 0 {
		return "weak_match"
	}
	return strings.Join(parts, "; ")
}

// tagOverlap returns the sorted intersection of the requirement tag set and
// the evidence tags.
func tagOverlap(reqTags map[string]struct{}, evTags []string) []string {
	var out []string
	for _, t := range evTags {
		if _, ok := reqTags[t]; ok {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func sortByScore(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Score > cs[j].Score })
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
