package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/corpus"
)

var combineCommand = &cobra.Command{
	Use:   "combine",
	Short: "Combine the source JSON files into one resume document",
	Long:  "Loads the five source collections and writes them as a single combined JSON document, without any filtering or optimization.",
	RunE:  runCombineCmd,
}

var (
	combineSourceDir string
	combineOutput    string
)

func init() {
	combineCommand.Flags().StringVar(&combineSourceDir, "source-dir", config.DefaultSourceDir, "Directory containing source resume JSON files")
	combineCommand.Flags().StringVarP(&combineOutput, "out", "o", "", "Output path (default: <source-dir>/combined_resume.json)")

	rootCmd.AddCommand(combineCommand)
}

func runCombineCmd(_ *cobra.Command, _ []string) error {
	resume, err := corpus.NewLoader(combineSourceDir).Load()
	if err != nil {
		return err
	}

	outputPath := combineOutput
	if outputPath == "" {
		outputPath = filepath.Join(combineSourceDir, "combined_resume.json")
	}

	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode combined resume: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write combined resume: %w", err)
	}

	fmt.Printf("Created combined resume at: %s\n", outputPath)
	return nil
}
