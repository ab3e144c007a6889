package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/pipeline"
)

var coverLetterCommand = &cobra.Command{
	Use:   "cover-letter [job-description]",
	Short: "Generate a personalized cover letter (step 4)",
	Long:  "Reads the most recent optimized artifact and synthesizes a cover letter draft tailored to the job description, then renders it to PDF.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterCmd,
}

var (
	coverLetterOutputDir   string
	coverLetterTemplateDir string
	coverLetterAPIKey      string
	coverLetterDryRun      bool
	coverLetterVerbose     bool
	coverLetterCompany     string
)

func init() {
	coverLetterCommand.Flags().StringVar(&coverLetterOutputDir, "output-dir", config.DefaultOutputDir, "Directory holding stage artifacts")
	coverLetterCommand.Flags().StringVar(&coverLetterTemplateDir, "template-dir", config.DefaultTemplateDir, "Directory containing LaTeX templates")
	coverLetterCommand.Flags().StringVar(&coverLetterCompany, "company-name", "", "Company name for the letter (extracted from the posting if omitted)")
	coverLetterCommand.Flags().BoolVar(&coverLetterDryRun, "dry-run", false, "Skip external service calls and use the deterministic draft")
	coverLetterCommand.Flags().BoolVarP(&coverLetterVerbose, "verbose", "v", false, "Print detailed progress information")
	coverLetterCommand.Flags().StringVar(&coverLetterAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(coverLetterCommand)
}

func runCoverLetterCmd(_ *cobra.Command, args []string) error {
	return pipeline.Run(context.Background(), pipeline.RunOptions{
		JobPath:     args[0],
		StageSpec:   "4",
		OutputDir:   coverLetterOutputDir,
		TemplateDir: coverLetterTemplateDir,
		APIKey:      resolveAPIKey(coverLetterAPIKey),
		DryRun:      coverLetterDryRun,
		Verbose:     coverLetterVerbose,
		CompanyName: coverLetterCompany,
	})
}
