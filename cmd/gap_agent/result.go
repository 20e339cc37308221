package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gap-analyzer/internal/db"
	"github.com/jonathan/gap-analyzer/internal/observability"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Print a stored gap analysis result",
	Long:  "Loads the persisted gap analysis result for a (resume, job) pair and prints it. Results that fail schema validation are treated as absent.",
	RunE:  runResult,
}

var (
	resultResumeID    int64
	resultJobID       int64
	resultJSON        bool
	resultDatabaseURL string
)

func init() {
	resultCmd.Flags().Int64Var(&resultResumeID, "resume-id", 0, "Resume ID (required)")
	resultCmd.Flags().Int64Var(&resultJobID, "job-id", 0, "Job ID (required)")
	resultCmd.Flags().BoolVar(&resultJSON, "json", false, "Print the full result as JSON")
	resultCmd.Flags().StringVar(&resultDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	resultCmd.MarkFlagRequired("resume-id")
	resultCmd.MarkFlagRequired("job-id")

	rootCmd.AddCommand(resultCmd)
}

func runResult(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := resultDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	result, err := database.LoadGapResult(ctx, resultResumeID, resultJobID)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("no stored result for resume %d, job %d", resultResumeID, resultJobID)
	}

	if resultJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintf(os.Stdout, "%s\n", encoded)
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintGapSummary(result)
	printer.PrintBucket("MATCHES", result.MatchedRequirements)
	printer.PrintBucket("PARTIAL GAPS", result.PartialGaps)
	printer.PrintBucket("HARD GAPS", result.HardGaps)
	printer.PrintBucket("SIGNAL GAPS", result.SignalGaps)
	fmt.Fprintf(os.Stdout, "%s\n", result.Summary)

	return nil
}
