package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pipeline/internal/types"
)

func writeCLICorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"personal_info.json": `{"name": "Ada Lovelace"}`,
		"experience.json":    `[{"company": "Acme", "priority": "high"}, {"company": "Initech"}]`,
		"skills.json":        `{"languages": ["Go", "Python", "Rust"]}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestRunCommand_DryRunSteps1To2(t *testing.T) {
	jobPath := filepath.Join(t.TempDir(), "platform_engineer.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("Go platform role"), 0o644))
	outputDir := t.TempDir()

	rootCmd.SetArgs([]string{
		"run", jobPath,
		"--step", "1-2",
		"--source-dir", writeCLICorpus(t),
		"--output-dir", outputDir,
		"--max-experiences", "1",
		"--dry-run",
	})
	require.NoError(t, rootCmd.Execute())

	filtered, err := filepath.Glob(filepath.Join(outputDir, "platform_engineer_step1_filtered_*.json"))
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	optimized, err := filepath.Glob(filepath.Join(outputDir, "platform_engineer_step2_optimized_*.json"))
	require.NoError(t, err)
	assert.Len(t, optimized, 1)
}

func TestRunCommand_ExplicitZeroBudgets(t *testing.T) {
	jobPath := filepath.Join(t.TempDir(), "platform_engineer.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("Go platform role"), 0o644))
	outputDir := t.TempDir()

	rootCmd.SetArgs([]string{
		"run", jobPath,
		"--step", "1",
		"--source-dir", writeCLICorpus(t),
		"--output-dir", outputDir,
		"--max-experiences", "0",
		"--max-skills-per-category", "0",
		"--dry-run",
	})
	require.NoError(t, rootCmd.Execute())

	matches, err := filepath.Glob(filepath.Join(outputDir, "platform_engineer_step1_filtered_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	var filtered types.Resume
	require.NoError(t, json.Unmarshal(data, &filtered))

	// A zero budget must survive the config merge and empty the section,
	// not be silently replaced by the default.
	assert.Empty(t, filtered.Experience)
	if filtered.Skills != nil {
		languages, _ := filtered.Skills.Category("languages")
		assert.Empty(t, languages)
	}
}

func TestRunCommand_MissingJobDescription(t *testing.T) {
	rootCmd.SetArgs([]string{
		"run", filepath.Join(t.TempDir(), "missing.txt"),
		"--step", "1",
		"--dry-run",
	})
	assert.Error(t, rootCmd.Execute())
}

func TestFilterCommand_RequiresJobArgument(t *testing.T) {
	rootCmd.SetArgs([]string{"filter"})
	assert.Error(t, rootCmd.Execute())
}
