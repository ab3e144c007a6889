package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/pipeline"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize [job-description]",
	Short: "Optimize bullet wording against the job description (step 2)",
	Long:  "Reads the most recent filtered artifact and asks the generation service for shape-preserving bullet rewrites. The bullet count of every entry is preserved; unusable responses leave the originals untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptimizeCmd,
}

var (
	optimizeOutputDir string
	optimizeAPIKey    string
	optimizeDryRun    bool
	optimizeVerbose   bool
	optimizeConcise   bool
)

func init() {
	optimizeCommand.Flags().StringVar(&optimizeOutputDir, "output-dir", config.DefaultOutputDir, "Directory holding stage artifacts")
	optimizeCommand.Flags().BoolVar(&optimizeDryRun, "dry-run", false, "Skip external service calls and pass bullets through unchanged")
	optimizeCommand.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "Print detailed progress information")
	optimizeCommand.Flags().BoolVar(&optimizeConcise, "concise", false, "Target shorter bullet points")
	optimizeCommand.Flags().StringVar(&optimizeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimizeCmd(_ *cobra.Command, args []string) error {
	return pipeline.Run(context.Background(), pipeline.RunOptions{
		JobPath:   args[0],
		StageSpec: "2",
		OutputDir: optimizeOutputDir,
		APIKey:    resolveAPIKey(optimizeAPIKey),
		DryRun:    optimizeDryRun,
		Verbose:   optimizeVerbose,
		Concise:   optimizeConcise,
	})
}
