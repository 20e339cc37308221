package ingestion

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gap-analyzer/internal/tagging"
	"github.com/jonathan/gap-analyzer/internal/types"
)

// memoryStore mimics the insert-or-ignore behavior of the real store using
// the same uniqueness key.
type memoryStore struct {
	chunks []*types.EvidenceChunk
	seen   map[string]struct{}
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{seen: map[string]struct{}{}}
}

func (m *memoryStore) UpsertEvidence(_ context.Context, chunk *types.EvidenceChunk) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	job := "nil"
	if chunk.JobID != nil {
		job = strconv.FormatInt(*chunk.JobID, 10)
	}
	key := strings.Join([]string{job, chunk.SourceType, chunk.SourceName, chunk.ContentHash}, "|")
	if _, dup := m.seen[key]; dup {
		return false, nil
	}
	m.seen[key] = struct{}{}
	m.chunks = append(m.chunks, chunk)
	return true, nil
}

const builderResume = `Experience

Led crisis communications during an FDA inquiry, protecting brand value across national press coverage and analyst briefings for the leadership team.
Managed a team of 12 communicators across two regions with a budget of $3M for integrated campaigns.
`

func newTestBuilder(store EvidenceStore) *Builder {
	return NewBuilder(store, tagging.NewTagger(tagging.DefaultLexicon()))
}

func TestBuildCache_ResumeOnly(t *testing.T) {
	store := newMemoryStore()
	builder := newTestBuilder(store)

	job := int64(42)
	stats, err := builder.BuildCache(context.Background(), 1, &job, builderResume, nil)
	require.NoError(t, err)

	assert.Greater(t, stats.ResumeChunks, 0)
	assert.Equal(t, 0, stats.PortfolioChunks)
	assert.Equal(t, stats.ResumeChunks, stats.Inserted)
	assert.Equal(t, 0, stats.Skipped)

	for _, chunk := range store.chunks {
		assert.Equal(t, int64(1), chunk.ResumeID)
		require.NotNil(t, chunk.JobID)
		assert.Equal(t, int64(42), *chunk.JobID)
		assert.Equal(t, types.SourceResume, chunk.SourceType)
		assert.Equal(t, "resume", chunk.SourceName)
		assert.NotEmpty(t, chunk.ContentHash)
		assert.NotEmpty(t, chunk.ChunkText)
	}
}

func TestBuildCache_TagsChunks(t *testing.T) {
	store := newMemoryStore()
	builder := newTestBuilder(store)

	_, err := builder.BuildCache(context.Background(), 1, nil, builderResume, nil)
	require.NoError(t, err)
	require.NotEmpty(t, store.chunks)

	var tagged bool
	for _, chunk := range store.chunks {
		if len(chunk.Tags) > 0 {
			tagged = true
			assert.Greater(t, chunk.Confidence, 0.0)
		}
	}
	assert.True(t, tagged, "expected at least one tagged chunk")
}

func TestBuildCache_PortfolioLabels(t *testing.T) {
	store := newMemoryStore()
	builder := newTestBuilder(store)

	portfolios := []string{
		"Case study: repositioned the brand narrative after a recall, with measurable sentiment recovery over two quarters of sustained national press engagement.",
		"Speaker bio: keynotes on financial communications and investor relations strategy delivered at three industry conferences across consecutive years.",
	}
	stats, err := builder.BuildCache(context.Background(), 1, nil, "", portfolios)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.ResumeChunks)
	assert.Greater(t, stats.PortfolioChunks, 0)

	names := map[string]bool{}
	for _, chunk := range store.chunks {
		assert.Equal(t, types.SourcePortfolio, chunk.SourceType)
		names[chunk.SourceName] = true
	}
	assert.True(t, names["portfolio_1"])
	assert.True(t, names["portfolio_2"])
}

func TestBuildCache_RebuildIsNoop(t *testing.T) {
	store := newMemoryStore()
	builder := newTestBuilder(store)

	first, err := builder.BuildCache(context.Background(), 1, nil, builderResume, nil)
	require.NoError(t, err)
	assert.Greater(t, first.Inserted, 0)

	second, err := builder.BuildCache(context.Background(), 1, nil, builderResume, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, first.Inserted, second.Skipped)
}

func TestBuildCache_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection reset")
	builder := newTestBuilder(store)

	_, err := builder.BuildCache(context.Background(), 1, nil, builderResume, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store resume chunk")
}

func TestBuildCache_EmptyInput(t *testing.T) {
	store := newMemoryStore()
	builder := newTestBuilder(store)

	stats, err := builder.BuildCache(context.Background(), 1, nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, store.chunks)
}
