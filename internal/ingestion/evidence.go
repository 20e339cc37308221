package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/gap-analyzer/internal/chunking"
	"github.com/jonathan/gap-analyzer/internal/tagging"
	"github.com/jonathan/gap-analyzer/internal/types"
)

// EvidenceStore is the insert-or-ignore sink the builder writes chunks to.
type EvidenceStore interface {
	UpsertEvidence(ctx context.Context, chunk *types.EvidenceChunk) (bool, error)
}

// Stats summarizes one cache build.
type Stats struct {
	ResumeChunks    int
	PortfolioChunks int
	Inserted        int
	Skipped         int
}

// Builder constructs the evidence cache for a (resume, job) pair: chunk the
// source text, tag every chunk, and upsert it. Rebuilding over unchanged
// text inserts nothing, so the builder is safe to run before every analysis.
type Builder struct {
	store  EvidenceStore
	tagger *tagging.Tagger
	opts   chunking.Options
	logger *zap.Logger
}

// NewBuilder creates a cache builder with default chunking bounds.
func NewBuilder(store EvidenceStore, tagger *tagging.Tagger) *Builder {
	return &Builder{
		store:  store,
		tagger: tagger,
		opts:   chunking.DefaultOptions(),
		logger: zap.NewNop(),
	}
}

// WithLogger attaches structured logging to the builder.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// BuildCache chunks, tags, and stores the resume text and every portfolio
// text for the given scope. A nil jobID caches the evidence as cross-job.
func (b *Builder) BuildCache(ctx context.Context, resumeID int64, jobID *int64, resumeText string, portfolioTexts []string) (Stats, error) {
	var stats Stats

	resumeChunks := chunking.ChunkText(resumeText, b.opts)
	stats.ResumeChunks = len(resumeChunks)
	if err := b.storeChunks(ctx, resumeID, jobID, types.SourceResume, "resume", resumeChunks, &stats); err != nil {
		return stats, err
	}

	for i, text := range portfolioTexts {
		label := fmt.Sprintf("portfolio_%d", i+1)
		chunks := chunking.ChunkText(text, b.opts)
		stats.PortfolioChunks += len(chunks)
		if err := b.storeChunks(ctx, resumeID, jobID, types.SourcePortfolio, label, chunks, &stats); err != nil {
			return stats, err
		}
	}

	b.logger.Info("evidence cache built",
		zap.Int64("resume_id", resumeID),
		zap.Int("resume_chunks", stats.ResumeChunks),
		zap.Int("portfolio_chunks", stats.PortfolioChunks),
		zap.Int("inserted", stats.Inserted),
		zap.Int("skipped", stats.Skipped))

	return stats, nil
}

func (b *Builder) storeChunks(ctx context.Context, resumeID int64, jobID *int64, sourceType, sourceName string, chunks []chunking.Chunk, stats *Stats) error {
	for _, chunk := range chunks {
		extraction := b.tagger.Extract(chunk.Text)

		inserted, err := b.store.UpsertEvidence(ctx, &types.EvidenceChunk{
			ResumeID:    resumeID,
			JobID:       jobID,
			SourceType:  sourceType,
			SourceName:  sourceName,
			Section:     chunk.Section,
			ChunkText:   chunk.Text,
			Tags:        extraction.Tags,
			Entities:    extraction.Entities,
			Signals:     extraction.Signals,
			Confidence:  extraction.Confidence,
			ContentHash: chunking.ContentHash(chunk.Section, chunk.Text),
		})
		if err != nil {
			return fmt.Errorf("failed to store %s chunk: %w", sourceType, err)
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Skipped++
		}
	}
	return nil
}
