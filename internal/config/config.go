// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default values applied when neither flags nor a config file set them
const (
	DefaultSourceDir            = "about-me"
	DefaultOutputDir            = "intermediate-outputs"
	DefaultTemplateDir          = "templates"
	DefaultMaxExperiences       = 3
	DefaultMaxProjects          = 2
	DefaultMaxSkillsPerCategory = 8
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Job         string `json:"job,omitempty"`          // Path to job description text file
	SourceDir   string `json:"source_dir,omitempty"`   // Directory holding the source corpus JSON files
	OutputDir   string `json:"output_dir,omitempty"`   // Directory for intermediate stage artifacts
	TemplateDir string `json:"template_dir,omitempty"` // Directory holding the LaTeX templates
	FinalOutput string `json:"final_output,omitempty"` // Output path for the rendered PDF

	// Slot budgets
	MaxExperiences       int `json:"max_experiences,omitempty"`
	MaxProjects          int `json:"max_projects,omitempty"`
	MaxSkillsPerCategory int `json:"max_skills_per_category,omitempty"`

	// Behavior
	APIKey              string `json:"api_key,omitempty"`               // Gemini API key
	Verbose             bool   `json:"verbose,omitempty"`               // Print detailed debug information
	DryRun              bool   `json:"dry_run,omitempty"`               // Skip external service calls
	Concise             bool   `json:"concise,omitempty"`               // Tighter bullet length target
	GenerateCoverLetter bool   `json:"generate_cover_letter,omitempty"` // Run the cover letter stage
	CompanyName         string `json:"company_name,omitempty"`          // Company name for the cover letter
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		SourceDir:            DefaultSourceDir,
		OutputDir:            DefaultOutputDir,
		TemplateDir:          DefaultTemplateDir,
		MaxExperiences:       DefaultMaxExperiences,
		MaxProjects:          DefaultMaxProjects,
		MaxSkillsPerCategory: DefaultMaxSkillsPerCategory,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxExperiences < 0 {
		return fmt.Errorf("config error: 'max_experiences' must be non-negative")
	}
	if c.MaxProjects < 0 {
		return fmt.Errorf("config error: 'max_projects' must be non-negative")
	}
	if c.MaxSkillsPerCategory < 0 {
		return fmt.Errorf("config error: 'max_skills_per_category' must be non-negative")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job description file not found: %s", c.Job)
		}
	}
	if c.SourceDir != "" {
		if _, err := os.Stat(c.SourceDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: source directory not found: %s", c.SourceDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags. A zero
// budget reads as unset here; callers that accept an explicit zero (the run
// command's budget flags) must apply it after merging.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.SourceDir == "" {
		result.SourceDir = defaults.SourceDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.TemplateDir == "" {
		result.TemplateDir = defaults.TemplateDir
	}
	if result.FinalOutput == "" {
		result.FinalOutput = defaults.FinalOutput
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.CompanyName == "" {
		result.CompanyName = defaults.CompanyName
	}

	if result.MaxExperiences == 0 {
		result.MaxExperiences = defaults.MaxExperiences
	}
	if result.MaxProjects == 0 {
		result.MaxProjects = defaults.MaxProjects
	}
	if result.MaxSkillsPerCategory == 0 {
		result.MaxSkillsPerCategory = defaults.MaxSkillsPerCategory
	}

	// Bool fields: true in either wins
	result.Verbose = result.Verbose || defaults.Verbose
	result.DryRun = result.DryRun || defaults.DryRun
	result.Concise = result.Concise || defaults.Concise
	result.GenerateCoverLetter = result.GenerateCoverLetter || defaults.GenerateCoverLetter

	return result
}
