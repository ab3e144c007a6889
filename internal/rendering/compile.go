package rendering

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout bounds a single pdflatex invocation
const CompilationTimeout = 60 * time.Second

// auxExtensions are the LaTeX byproducts removed after compilation
var auxExtensions = []string{".aux", ".log", ".out", ".toc"}

// CompilePDF writes texSource to a scratch directory, compiles it with
// pdflatex, and copies the resulting PDF to outputPath. pdflatex runs
// twice so cross-references resolve. Compiler diagnostics are returned
// alongside any error.
func CompilePDF(texSource, outputPath string) (logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", &CompilationError{
			Message: "pdflatex not found in PATH, install a LaTeX distribution (TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "resume-latex-*")
	if err != nil {
		return "", &CompilationError{Message: "failed to create scratch directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "document.tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
		return "", &CompilationError{Message: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), CompilationTimeout)
	defer cancel()

	var log strings.Builder
	var runErr error
	for pass := 0; pass < 2; pass++ {
		cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)
		cmd.Stdout = &log
		cmd.Stderr = &log
		runErr = cmd.Run()
	}
	logOutput = log.String()

	pdfPath := filepath.Join(workDir, "document.pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return logOutput, &CompilationError{
			Message:   "compilation produced no PDF",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	CleanupAuxFiles(workDir, "document")

	if err := copyFile(pdfPath, outputPath); err != nil {
		return logOutput, &CompilationError{Message: "failed to place output PDF", Cause: err}
	}

	// pdflatex can exit nonzero yet still emit a usable PDF. The PDF is
	// delivered but the error is surfaced so the caller can warn.
	if runErr != nil {
		return logOutput, &CompilationError{
			Message:   "compilation finished with errors, PDF may be incomplete",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	return logOutput, nil
}

// CleanupAuxFiles removes LaTeX auxiliary files for the named document
func CleanupAuxFiles(dir, base string) {
	for _, ext := range auxExtensions {
		_ = os.Remove(filepath.Join(dir, base+ext))
	}
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
