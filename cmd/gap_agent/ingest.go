package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/gap-analyzer/internal/config"
	"github.com/jonathan/gap-analyzer/internal/db"
	"github.com/jonathan/gap-analyzer/internal/ingestion"
	"github.com/jonathan/gap-analyzer/internal/logging"
	"github.com/jonathan/gap-analyzer/internal/tagging"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a resume and portfolio material, then build the evidence cache",
	Long: `Reads a resume text file plus optional portfolio files and URLs, stores them,
and builds the evidence cache: every source is chunked, tagged against the
competency lexicon, and upserted. Rebuilding over unchanged text inserts
nothing, so ingest is safe to re-run.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runIngest,
}

var (
	ingestConfigPath    string
	ingestResume        string
	ingestPortfolios    []string
	ingestPortfolioURLs []string
	ingestJobID         int64
	ingestDatabaseURL   string
	ingestVerbose       bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	ingestCmd.Flags().StringVarP(&ingestResume, "resume", "r", "", "Path to resume text file")
	ingestCmd.Flags().StringSliceVarP(&ingestPortfolios, "portfolio", "p", nil, "Path to a portfolio text file (repeatable)")
	ingestCmd.Flags().StringSliceVar(&ingestPortfolioURLs, "portfolio-url", nil, "Portfolio page URL to fetch (repeatable)")
	ingestCmd.Flags().Int64Var(&ingestJobID, "job-id", 0, "Scope the evidence cache to a job ID (0 for resume-wide)")
	ingestCmd.Flags().StringVar(&ingestDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if ingestConfigPath != "" {
		loadedCfg, err := config.LoadConfig(ingestConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = ingestResume
	}
	if cmd.Flags().Changed("portfolio-url") {
		cfg.PortfolioURLs = ingestPortfolioURLs
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = ingestDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = ingestVerbose
	}

	// Step 3: Fill remaining gaps from the environment
	cfg = cfg.MergeWithDefaults(config.Config{DatabaseURL: os.Getenv("DATABASE_URL")})

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	logger, err := logging.New(false, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	raw, err := ingestion.ReadTextFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	resumeText := ingestion.CleanText(raw)
	if resumeText == "" {
		return fmt.Errorf("resume file %s is empty after cleaning", cfg.Resume)
	}

	resumeID, err := database.SaveResume(ctx, filepath.Base(cfg.Resume), resumeText)
	if err != nil {
		return err
	}

	var jobID *int64
	if ingestJobID > 0 {
		jobID = &ingestJobID
	}

	portfolioTexts, err := collectPortfolios(ctx, database, resumeID, jobID, ingestPortfolios, cfg.PortfolioURLs)
	if err != nil {
		return err
	}

	tagger := tagging.NewTagger(tagging.DefaultLexicon())
	builder := ingestion.NewBuilder(database, tagger).WithLogger(logger)

	stats, err := builder.BuildCache(ctx, resumeID, jobID, resumeText, portfolioTexts)
	if err != nil {
		return fmt.Errorf("failed to build evidence cache: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Resume stored with ID %d\n", resumeID)
	fmt.Fprintf(os.Stdout, "Evidence cache: %d resume chunks, %d portfolio chunks (%d inserted, %d already present)\n",
		stats.ResumeChunks, stats.PortfolioChunks, stats.Inserted, stats.Skipped)

	return nil
}

// collectPortfolios reads portfolio files, fetches portfolio URLs, persists
// every item, and returns the cleaned texts for the evidence cache build.
func collectPortfolios(ctx context.Context, database *db.DB, resumeID int64, jobID *int64, files, urls []string) ([]string, error) {
	var texts []string

	for _, path := range files {
		raw, err := ingestion.ReadTextFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read portfolio file: %w", err)
		}
		text := ingestion.CleanText(raw)
		if text == "" {
			continue
		}
		if _, err := database.SavePortfolioItem(ctx, db.PortfolioItem{
			ResumeID:   resumeID,
			JobID:      jobID,
			SourceName: filepath.Base(path),
			SourceType: "doc",
			RawText:    text,
		}); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	if len(urls) > 0 {
		fetched, err := ingestion.IngestPortfolioURLs(ctx, urls)
		if err != nil {
			return nil, err
		}
		for i, text := range fetched {
			if _, err := database.SavePortfolioItem(ctx, db.PortfolioItem{
				ResumeID:   resumeID,
				JobID:      jobID,
				SourceName: urls[i],
				SourceType: "url",
				URL:        urls[i],
				RawText:    text,
			}); err != nil {
				return nil, err
			}
			texts = append(texts, text)
		}
	}

	return texts, nil
}
