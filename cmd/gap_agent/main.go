// Package main provides the entry point for the grounded gap analysis CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gap_agent",
	Short: "Grounded resume gap analysis",
	Long:  "gap_agent compares a resume and portfolio against a job description, classifying every extracted requirement as a match, partial gap, hard gap, or signal gap, with each claim cited against stored evidence.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
