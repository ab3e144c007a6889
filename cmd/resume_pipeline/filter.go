package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/pipeline"
)

var filterCommand = &cobra.Command{
	Use:   "filter [job-description]",
	Short: "Select the most relevant experiences, projects, and skills (step 1)",
	Long:  "Loads the source corpus and keeps the entries most relevant to the job description, respecting declared priority levels. Writes a filtered resume artifact without rewriting any content.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilterCmd,
}

var (
	filterSourceDir      string
	filterOutputDir      string
	filterAPIKey         string
	filterDryRun         bool
	filterVerbose        bool
	filterMaxExperiences int
	filterMaxProjects    int
	filterMaxSkills      int
)

func init() {
	filterCommand.Flags().StringVar(&filterSourceDir, "source-dir", config.DefaultSourceDir, "Directory containing source resume JSON files")
	filterCommand.Flags().StringVar(&filterOutputDir, "output-dir", config.DefaultOutputDir, "Directory for the filtered artifact")
	filterCommand.Flags().IntVar(&filterMaxExperiences, "max-experiences", config.DefaultMaxExperiences, "Maximum experiences to include")
	filterCommand.Flags().IntVar(&filterMaxProjects, "max-projects", config.DefaultMaxProjects, "Maximum projects to include")
	filterCommand.Flags().IntVar(&filterMaxSkills, "max-skills-per-category", config.DefaultMaxSkillsPerCategory, "Maximum skills to keep per category")
	filterCommand.Flags().BoolVar(&filterDryRun, "dry-run", false, "Skip external service calls and use deterministic selection")
	filterCommand.Flags().BoolVarP(&filterVerbose, "verbose", "v", false, "Print detailed progress information")
	filterCommand.Flags().StringVar(&filterAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(filterCommand)
}

func runFilterCmd(_ *cobra.Command, args []string) error {
	return pipeline.Run(context.Background(), pipeline.RunOptions{
		JobPath:              args[0],
		StageSpec:            "1",
		SourceDir:            filterSourceDir,
		OutputDir:            filterOutputDir,
		MaxExperiences:       filterMaxExperiences,
		MaxProjects:          filterMaxProjects,
		MaxSkillsPerCategory: filterMaxSkills,
		APIKey:               resolveAPIKey(filterAPIKey),
		DryRun:               filterDryRun,
		Verbose:              filterVerbose,
	})
}
