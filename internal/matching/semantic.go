package matching

import (
	"context"
	"math"
)

// SimilarityScore pairs a candidate index with a similarity in [0,1].
type SimilarityScore struct {
	Index int
	Score float64
}

// SimilarityProvider supplies semantic similarity between a query and a list
// of candidate texts. Implementations must be safely callable with an empty
// candidate list. A nil score list or an error both mean "semantic signal
// unavailable"; the caller degrades to lexical-only ranking and never fails
// the match.
type SimilarityProvider interface {
	Similarity(ctx context.Context, query string, candidates []string) ([]SimilarityScore, error)
}

// DisabledProvider is the explicit "semantic reranking off" variant. Using
// it keeps the matcher's control flow identical whether or not a real
// provider is configured.
type DisabledProvider struct{}

// Similarity always reports the semantic signal as unavailable.
func (DisabledProvider) Similarity(context.Context, string, []string) ([]SimilarityScore, error) {
	return nil, nil
}

// cosine computes cosine similarity between two vectors; zero on empty or
// mismatched inputs.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na <= 0 || nb <= 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
