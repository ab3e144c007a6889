// Package main provides the resume_pipeline CLI: a staged pipeline that
// filters, optimizes, and renders a resume tailored to a job description.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_pipeline",
	Short: "Job-tailored resume generation pipeline",
	Long:  "resume_pipeline selects the most relevant resume content for a job description, optimizes bullet wording, and renders a LaTeX PDF, with an optional cover letter.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveAPIKey prefers the flag value and falls back to the environment
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("GEMINI_API_KEY")
}
