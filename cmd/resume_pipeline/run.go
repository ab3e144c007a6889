package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run [job-description]",
	Short: "Run the resume generation pipeline end-to-end",
	Long: `Runs the staged pipeline: relevance filtering -> bullet optimization -> PDF rendering, plus optional cover letter generation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipelineCmd,
}

var (
	runConfigPath          string
	runStep                string
	runSourceDir           string
	runOutputDir           string
	runTemplateDir         string
	runFinalOutput         string
	runAPIKey              string
	runDryRun              bool
	runVerbose             bool
	runConcise             bool
	runMaxExperiences      int
	runMaxProjects         int
	runMaxSkills           int
	runGenerateCoverLetter bool
	runCompanyName         string
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runStep, "step", "all", "Which step(s) to run: all, a single step (1-4), or a range like 2-3")
	runCommand.Flags().StringVar(&runSourceDir, "source-dir", config.DefaultSourceDir, "Directory containing source resume JSON files")
	runCommand.Flags().StringVar(&runOutputDir, "output-dir", config.DefaultOutputDir, "Directory for intermediate outputs")
	runCommand.Flags().StringVar(&runTemplateDir, "template-dir", config.DefaultTemplateDir, "Directory containing LaTeX templates")
	runCommand.Flags().StringVar(&runFinalOutput, "final-output", "", "Final PDF output path (default: output/<job>_resume_<timestamp>.pdf)")
	runCommand.Flags().IntVar(&runMaxExperiences, "max-experiences", config.DefaultMaxExperiences, "Maximum experiences to include")
	runCommand.Flags().IntVar(&runMaxProjects, "max-projects", config.DefaultMaxProjects, "Maximum projects to include")
	runCommand.Flags().IntVar(&runMaxSkills, "max-skills-per-category", config.DefaultMaxSkillsPerCategory, "Maximum skills to keep per category")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Skip external service calls and use deterministic selection")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")
	runCommand.Flags().BoolVar(&runConcise, "concise", false, "Target shorter bullet points")
	runCommand.Flags().BoolVar(&runGenerateCoverLetter, "generate-cover-letter", false, "Also generate a cover letter (step 4)")
	runCommand.Flags().StringVar(&runCompanyName, "company-name", "", "Company name for the cover letter (extracted from the posting if omitted)")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Command-line args take priority over config file values, which in
	// turn take priority over built-in defaults.
	flagCfg := config.Config{
		Job:                 args[0],
		APIKey:              resolveAPIKey(runAPIKey),
		Verbose:             runVerbose,
		DryRun:              runDryRun,
		Concise:             runConcise,
		GenerateCoverLetter: runGenerateCoverLetter,
		CompanyName:         runCompanyName,
		FinalOutput:         runFinalOutput,
	}
	if cmd.Flags().Changed("source-dir") {
		flagCfg.SourceDir = runSourceDir
	}
	if cmd.Flags().Changed("output-dir") {
		flagCfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("template-dir") {
		flagCfg.TemplateDir = runTemplateDir
	}
	merged := flagCfg.MergeWithDefaults(cfg)
	merged = merged.MergeWithDefaults(config.DefaultConfig())

	// Budget flags are applied after the merge: zero is a legal budget,
	// and the merge cannot tell an explicit zero apart from unset.
	if cmd.Flags().Changed("max-experiences") {
		merged.MaxExperiences = runMaxExperiences
	}
	if cmd.Flags().Changed("max-projects") {
		merged.MaxProjects = runMaxProjects
	}
	if cmd.Flags().Changed("max-skills-per-category") {
		merged.MaxSkillsPerCategory = runMaxSkills
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		JobPath:              merged.Job,
		StageSpec:            runStep,
		SourceDir:            merged.SourceDir,
		OutputDir:            merged.OutputDir,
		TemplateDir:          merged.TemplateDir,
		FinalOutput:          merged.FinalOutput,
		MaxExperiences:       merged.MaxExperiences,
		MaxProjects:          merged.MaxProjects,
		MaxSkillsPerCategory: merged.MaxSkillsPerCategory,
		APIKey:               merged.APIKey,
		DryRun:               merged.DryRun,
		Verbose:              merged.Verbose,
		Concise:              merged.Concise,
		GenerateCoverLetter:  merged.GenerateCoverLetter,
		CompanyName:          merged.CompanyName,
	}
	return pipeline.Run(context.Background(), opts)
}
