package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/pipeline"
)

var renderCommand = &cobra.Command{
	Use:   "render [job-description]",
	Short: "Render the optimized resume to PDF (step 3)",
	Long:  "Reads the most recent optimized artifact, renders it through the LaTeX templates, and compiles a PDF with pdflatex.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenderCmd,
}

var (
	renderOutputDir   string
	renderTemplateDir string
	renderFinalOutput string
	renderVerbose     bool
)

func init() {
	renderCommand.Flags().StringVar(&renderOutputDir, "output-dir", config.DefaultOutputDir, "Directory holding stage artifacts")
	renderCommand.Flags().StringVar(&renderTemplateDir, "template-dir", config.DefaultTemplateDir, "Directory containing LaTeX templates")
	renderCommand.Flags().StringVar(&renderFinalOutput, "final-output", "", "Final PDF output path (default: output/<job>_resume_<timestamp>.pdf)")
	renderCommand.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(renderCommand)
}

func runRenderCmd(_ *cobra.Command, args []string) error {
	// Rendering never talks to the generation service; dry-run here only
	// skips client construction.
	return pipeline.Run(context.Background(), pipeline.RunOptions{
		JobPath:     args[0],
		StageSpec:   "3",
		OutputDir:   renderOutputDir,
		TemplateDir: renderTemplateDir,
		FinalOutput: renderFinalOutput,
		DryRun:      true,
		Verbose:     renderVerbose,
	})
}
