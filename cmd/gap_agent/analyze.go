package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/gap-analyzer/internal/analysis"
	"github.com/jonathan/gap-analyzer/internal/config"
	"github.com/jonathan/gap-analyzer/internal/db"
	"github.com/jonathan/gap-analyzer/internal/extraction"
	"github.com/jonathan/gap-analyzer/internal/ingestion"
	"github.com/jonathan/gap-analyzer/internal/logging"
	"github.com/jonathan/gap-analyzer/internal/matching"
	"github.com/jonathan/gap-analyzer/internal/observability"
	"github.com/jonathan/gap-analyzer/internal/overrides"
	"github.com/jonathan/gap-analyzer/internal/tagging"
	"github.com/jonathan/gap-analyzer/internal/types"
	"github.com/jonathan/gap-analyzer/internal/weighting"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a grounded gap analysis for a stored resume against a job description",
	Long: `Extracts requirements from a job description, matches each one against the
stored evidence cache, classifies it as match / partial gap / hard gap /
signal gap, and persists the scored result.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath     string
	analyzeResumeID       int64
	analyzeJob            string
	analyzeJobURL         string
	analyzeAPIKey         string
	analyzeSemanticRerank bool
	analyzeExecWeighting  bool
	analyzeOverrides      bool
	analyzeEvidenceLimit  int
	analyzeVerbose        bool
	analyzeDatabaseURL    string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().Int64Var(&analyzeResumeID, "resume-id", 0, "Resume ID from a prior ingest (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	analyzeCmd.Flags().BoolVar(&analyzeSemanticRerank, "semantic-rerank", false, "Blend embedding similarity into match scores (requires API key)")
	analyzeCmd.Flags().BoolVar(&analyzeExecWeighting, "exec-weighting", false, "Compute the executive-weighted score alongside the grounded score")
	analyzeCmd.Flags().BoolVar(&analyzeOverrides, "overrides", false, "Apply fact-based overrides (degree, years of experience)")
	analyzeCmd.Flags().IntVar(&analyzeEvidenceLimit, "evidence-limit", 0, "Maximum evidence chunks to load (0 uses the default)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	analyzeCmd.MarkFlagRequired("resume-id")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = analyzeJobURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("semantic-rerank") {
		cfg.SemanticRerank = analyzeSemanticRerank
	}
	if cmd.Flags().Changed("exec-weighting") {
		cfg.ExecWeighting = analyzeExecWeighting
	}
	if cmd.Flags().Changed("overrides") {
		cfg.Overrides = analyzeOverrides
	}
	if cmd.Flags().Changed("evidence-limit") {
		cfg.EvidenceLimit = analyzeEvidenceLimit
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}

	// Step 3: Validate required fields
	if analyzeResumeID <= 0 {
		return fmt.Errorf("--resume-id must be a positive resume ID")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	logger, err := logging.New(false, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Step 4: Fill remaining gaps from the environment
	cfg = cfg.MergeWithDefaults(config.Config{DatabaseURL: os.Getenv("DATABASE_URL")})
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Step 5: Obtain and store the job description
	jobText, jobURL, err := loadJobDescription(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Debug("job description loaded",
		zap.Int("chars", len(jobText)),
		zap.String("preview", logging.TruncateForLog(jobText, 200)))

	jobID, err := database.SaveJob(ctx, db.JobPosting{URL: jobURL, Description: jobText})
	if err != nil {
		return err
	}

	runID, err := database.CreateRun(ctx, analyzeResumeID, jobID)
	if err != nil {
		return err
	}

	arts, err := executeAnalysis(ctx, database, cfg, logger, jobText, jobID)
	if err != nil {
		if completeErr := database.CompleteRun(ctx, runID, db.RunStatusFailed); completeErr != nil {
			logger.Warn("failed to mark run as failed", zap.Error(completeErr))
		}
		return err
	}

	if err := database.CompleteRun(ctx, runID, db.RunStatusCompleted); err != nil {
		return err
	}

	printAnalysis(cfg, arts)

	fmt.Fprintf(os.Stdout, "\nRun %s completed for resume %d, job %d\n", runID, analyzeResumeID, jobID)
	fmt.Fprintf(os.Stdout, "%s\n", arts.result.Summary)

	return nil
}

// loadJobDescription returns the cleaned job text and, for URL input, the
// source URL to store with the posting.
func loadJobDescription(ctx context.Context, cfg config.Config) (string, string, error) {
	if cfg.Job != "" {
		raw, err := ingestion.ReadTextFile(cfg.Job)
		if err != nil {
			return "", "", fmt.Errorf("failed to read job description: %w", err)
		}
		return ingestion.CleanText(raw), "", nil
	}

	text, err := ingestion.IngestJobFromURL(ctx, cfg.JobURL)
	if err != nil {
		return "", "", err
	}
	return text, cfg.JobURL, nil
}

// analysisArtifacts bundles everything one analyze invocation produced.
type analysisArtifacts struct {
	requirements []types.Requirement
	result       *types.GapAnalysisResult
	outcome      weighting.Outcome
	records      []types.OverrideRecord
}

// executeAnalysis wires the matcher, runs the engine, and applies the
// optional override and weighting stages.
func executeAnalysis(ctx context.Context, database *db.DB, cfg config.Config, logger *zap.Logger, jobText string, jobID int64) (*analysisArtifacts, error) {
	tagger := tagging.NewTagger(tagging.DefaultLexicon())

	provider, closeProvider, err := buildSimilarityProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeProvider()

	extractor := extraction.NewExtractor(tagger)
	matcher := matching.NewMatcher(tagger, provider).WithLogger(logger)
	engine := analysis.NewEngine(database, database, extractor, matcher).WithLogger(logger)

	result, err := engine.Run(ctx, analysis.Request{
		ResumeID:       analyzeResumeID,
		JobID:          jobID,
		JobDescription: jobText,
		EvidenceLimit:  cfg.EvidenceLimit,
	})
	if err != nil {
		return nil, err
	}

	var records []types.OverrideRecord
	if cfg.Overrides {
		resumeText := database.GetResumeText(ctx, analyzeResumeID)
		if resumeText == "" {
			logger.Warn("overrides enabled but resume text could not be loaded", zap.Int64("resume_id", analyzeResumeID))
		} else {
			records = overrides.NewEngine(overrides.DefaultConfig()).WithLogger(logger).Apply(result, resumeText)
			if len(records) > 0 {
				overrides.Rebucket(result)
				if err := database.SaveGapResult(ctx, analyzeResumeID, jobID, result); err != nil {
					return nil, err
				}
			}
		}
	}

	arts := &analysisArtifacts{
		result:  result,
		outcome: weighting.Score(result, cfg.ExecWeighting, weighting.DefaultMaxAbsAdjustment),
		records: records,
	}
	if cfg.Verbose {
		// Extraction is deterministic, so this matches what the engine saw.
		arts.requirements = extractor.Extract(jobText)
	}
	return arts, nil
}

// buildSimilarityProvider returns the embedding provider for semantic
// reranking, or the disabled provider when reranking is off. The returned
// func releases the provider's resources.
func buildSimilarityProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) (matching.SimilarityProvider, func(), error) {
	if !cfg.SemanticRerank {
		return matching.DisabledProvider{}, func() {}, nil
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("--semantic-rerank requires GEMINI_API_KEY environment variable or --api-key flag")
	}

	provider, err := matching.NewGeminiProvider(ctx, apiKey, matching.DefaultEmbeddingModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	closeProvider := func() {
		if err := provider.Close(); err != nil {
			logger.Warn("failed to close embedding provider", zap.Error(err))
		}
	}
	return provider, closeProvider, nil
}

func printAnalysis(cfg config.Config, arts *analysisArtifacts) {
	printer := observability.NewPrinter(os.Stdout)

	if cfg.Verbose {
		printer.PrintRequirements(arts.requirements)
	}

	printer.PrintGapSummary(arts.result)

	if cfg.Verbose {
		printer.PrintBucket("MATCHES", arts.result.MatchedRequirements)
		printer.PrintBucket("PARTIAL GAPS", arts.result.PartialGaps)
		printer.PrintBucket("HARD GAPS", arts.result.HardGaps)
		printer.PrintBucket("SIGNAL GAPS", arts.result.SignalGaps)
	}

	if cfg.Overrides {
		printer.PrintOverrides(arts.records)
	}
	if cfg.ExecWeighting {
		printer.PrintExecWeighting(&arts.outcome)
	}
}
