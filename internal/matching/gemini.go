package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultEmbeddingModel is the Gemini embedding model used for semantic
// similarity.
const DefaultEmbeddingModel = "text-embedding-004"

// DefaultSimilarityTimeout bounds one batch-embedding call. The semantic
// signal is best-effort; the pipeline proceeds lexically on timeout.
const DefaultSimilarityTimeout = 20 * time.Second

// GeminiProvider computes semantic similarity as cosine distance between
// Gemini batch embeddings of the query and each candidate.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates a provider backed by the Gemini embeddings API.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model, timeout: DefaultSimilarityTimeout}, nil
}

// Similarity embeds the query together with all candidates in one batch and
// returns per-candidate cosine similarity. Errors are returned to the caller,
// which treats them as "semantic signal unavailable".
func (p *GeminiProvider) Similarity(ctx context.Context, query string, candidates []string) ([]SimilarityScore, error) {
	if len(candidates) == 0 {
		return []SimilarityScore{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	em := p.client.EmbeddingModel(p.model)
	batch := em.NewBatch().AddContent(genai.Text(query))
	for _, c := range candidates {
		batch = batch.AddContent(genai.Text(c))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidates: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(candidates)+1 {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", embeddingCount(resp), len(candidates)+1)
	}

	q := toFloat64(resp.Embeddings[0].Values)
	scores := make([]SimilarityScore, 0, len(candidates))
	for i, e := range resp.Embeddings[1:] {
		scores = append(scores, SimilarityScore{Index: i, Score: cosine(q, toFloat64(e.Values))})
	}
	return scores, nil
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func embeddingCount(resp *genai.BatchEmbedContentsResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
