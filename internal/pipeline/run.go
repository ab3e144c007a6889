package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-pipeline/internal/artifacts"
	"github.com/jonathan/resume-pipeline/internal/corpus"
	"github.com/jonathan/resume-pipeline/internal/coverletter"
	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/observability"
	"github.com/jonathan/resume-pipeline/internal/optimizing"
	"github.com/jonathan/resume-pipeline/internal/ranking"
	"github.com/jonathan/resume-pipeline/internal/rendering"
	"github.com/jonathan/resume-pipeline/internal/schemas"
	"github.com/jonathan/resume-pipeline/internal/selection"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	JobPath   string // Path to the job description text file
	StageSpec string // Stage selector: "all", "1", "2-3", ...

	SourceDir   string
	OutputDir   string
	TemplateDir string
	FinalOutput string // Rendered resume PDF path; defaulted when empty

	MaxExperiences       int
	MaxProjects          int
	MaxSkillsPerCategory int

	APIKey              string
	DryRun              bool
	Verbose             bool
	Concise             bool
	GenerateCoverLetter bool
	CompanyName         string

	// Client overrides API-key client construction. Tests inject fakes here.
	Client llm.Client
	// Out receives progress output; defaults to os.Stdout.
	Out io.Writer
	// SkipCompile renders LaTeX but skips the pdflatex invocation.
	SkipCompile bool
}

// runner carries the state threaded through a single pipeline invocation
type runner struct {
	opts    RunOptions
	out     io.Writer
	printer *observability.Printer
	store   *artifacts.Store
	jobName string
	jobDesc string

	client    llm.Client
	ownClient bool
	ranker    selection.Ranker

	// in-memory stage outputs, nil when that stage did not run here
	filtered  *types.Resume
	optimized *types.Resume
}

// Run executes the selected pipeline stages in order, halting on the first
// failure. Stage inputs come from the in-memory predecessor when it ran in
// this invocation, otherwise from the most recent matching artifact.
func Run(ctx context.Context, opts RunOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	from, to, err := ParseStageRange(opts.StageSpec, opts.GenerateCoverLetter)
	if err != nil {
		return err
	}

	jobData, err := os.ReadFile(opts.JobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description %s: %w", opts.JobPath, err)
	}

	r := &runner{
		opts:    opts,
		out:     out,
		printer: observability.NewPrinter(out),
		store:   artifacts.NewStore(opts.OutputDir),
		jobName: jobStem(opts.JobPath),
		jobDesc: string(jobData),
	}

	if err := r.setupRanker(ctx); err != nil {
		return err
	}
	defer r.closeClient()

	runID := uuid.New()
	fmt.Fprintf(out, "Starting resume pipeline (run %s)\n", runID)
	fmt.Fprintf(out, "Job description: %s\n", opts.JobPath)
	fmt.Fprintf(out, "Steps: %s through %s\n", from, to)

	for stage := from; stage <= to; stage++ {
		fmt.Fprintf(out, "\n=== %s ===\n", stage.Title())
		if err := r.runStage(ctx, stage); err != nil {
			fmt.Fprintf(out, "%s failed: %v\n", stage.Title(), err)
			return err
		}
		fmt.Fprintf(out, "%s completed\n", stage.Title())
	}

	fmt.Fprintf(out, "\nPipeline completed successfully\n")
	return nil
}

func (r *runner) runStage(ctx context.Context, stage Stage) error {
	switch stage {
	case StageFilter:
		return r.runFilter(ctx)
	case StageOptimize:
		return r.runOptimize(ctx)
	case StageRender:
		return r.runRender()
	case StageCoverLetter:
		return r.runCoverLetter(ctx)
	default:
		return fmt.Errorf("unknown stage %d", int(stage))
	}
}

// setupRanker builds the external client and ranking strategy. Dry runs use
// deterministic truncation and construct no client at all.
func (r *runner) setupRanker(ctx context.Context) error {
	if r.opts.DryRun {
		r.ranker = ranking.TruncateRanker{}
		return nil
	}

	r.client = r.opts.Client
	if r.client == nil {
		if r.opts.APIKey == "" {
			return fmt.Errorf("API key not provided: set GEMINI_API_KEY or pass --api-key (or use --dry-run)")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), r.opts.APIKey)
		if err != nil {
			return fmt.Errorf("failed to initialize generation client: %w", err)
		}
		r.client = client
		r.ownClient = true
	}
	r.ranker = ranking.NewAdapter(r.client)
	return nil
}

func (r *runner) closeClient() {
	if r.ownClient && r.client != nil {
		_ = r.client.Close()
	}
}

func (r *runner) runFilter(ctx context.Context) error {
	source, err := corpus.NewLoader(r.opts.SourceDir).Load()
	if err != nil {
		return err
	}

	filtered := &types.Resume{
		PersonalInfo: source.PersonalInfo,
		Education:    source.Education,
	}

	if len(source.Experience) > 0 {
		fmt.Fprintf(r.out, "Selecting up to %d of %d experiences...\n", r.opts.MaxExperiences, len(source.Experience))
		filtered.Experience = selection.SelectExperiences(ctx, source.Experience, r.opts.MaxExperiences, r.jobDesc, r.ranker)
	}
	if len(source.Projects) > 0 {
		fmt.Fprintf(r.out, "Selecting up to %d of %d projects...\n", r.opts.MaxProjects, len(source.Projects))
		filtered.Projects = selection.SelectProjects(ctx, source.Projects, r.opts.MaxProjects, r.jobDesc, r.ranker)
	}
	if source.Skills != nil {
		fmt.Fprintf(r.out, "Filtering skills to %d per category...\n", r.opts.MaxSkillsPerCategory)
		filtered.Skills = selection.FilterSkills(ctx, source.Skills, r.jobDesc, r.opts.MaxSkillsPerCategory, r.ranker)
	}

	if r.opts.Verbose {
		r.printer.PrintSelection(filtered, len(source.Experience), len(source.Projects))
		r.printer.PrintSkillFilter(source.Skills, filtered.Skills)
	}

	path, err := r.saveArtifact(artifacts.LabelFiltered, filtered)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Filtered resume written: %s\n", path)

	r.filtered = filtered
	return nil
}

func (r *runner) runOptimize(ctx context.Context) error {
	input, err := r.resolveInput(r.filtered, artifacts.LabelFiltered, "step 1")
	if err != nil {
		return err
	}

	var optimized *types.Resume
	if r.opts.DryRun {
		fmt.Fprintf(r.out, "Dry run: keeping bullets unchanged\n")
		optimized = input
	} else {
		optimizer := optimizing.NewOptimizer(r.client).WithProgress(r.out)
		optimized = optimizer.OptimizeResume(ctx, input, r.jobDesc, r.opts.Concise)
	}

	path, err := r.saveArtifact(artifacts.LabelOptimized, optimized)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Optimized resume written: %s\n", path)

	r.optimized = optimized
	return nil
}

func (r *runner) runRender() error {
	input, err := r.resolveInput(r.optimized, artifacts.LabelOptimized, "step 2")
	if err != nil {
		return err
	}

	texSource, err := rendering.NewRenderer(r.opts.TemplateDir).RenderResume(input)
	if err != nil {
		return err
	}

	outputPath := r.opts.FinalOutput
	if outputPath == "" {
		outputPath = filepath.Join("output", fmt.Sprintf("%s_resume_%s.pdf", r.jobName, time.Now().Format("20060102_150405")))
	}

	if r.opts.SkipCompile {
		fmt.Fprintf(r.out, "Skipping PDF compilation\n")
		return nil
	}

	logOutput, err := rendering.CompilePDF(texSource, outputPath)
	if err != nil {
		if r.opts.Verbose && logOutput != "" {
			fmt.Fprintf(r.out, "pdflatex output:\n%s\n", logOutput)
		}
		return err
	}
	fmt.Fprintf(r.out, "Resume PDF written: %s\n", outputPath)
	return nil
}

func (r *runner) runCoverLetter(ctx context.Context) error {
	input, err := r.resolveInput(r.optimized, artifacts.LabelOptimized, "step 2")
	if err != nil {
		return err
	}

	var draft types.CoverLetterDraft
	if r.opts.DryRun {
		draft = coverletter.DryRunDraft(input, r.opts.CompanyName)
	} else {
		draft = coverletter.NewSynthesizer(r.client).Synthesize(ctx, input, r.jobDesc, r.opts.CompanyName)
	}

	if r.opts.Verbose {
		r.printer.PrintCoverLetter(&draft)
	}

	date := time.Now().Format("January 2, 2006")
	texSource, err := rendering.NewRenderer(r.opts.TemplateDir).RenderCoverLetter(draft, input.PersonalInfo, date)
	if err != nil {
		return err
	}

	outputPath := filepath.Join("output", fmt.Sprintf("%s_cover_letter_%s.pdf", r.jobName, time.Now().Format("20060102_150405")))

	if r.opts.SkipCompile {
		fmt.Fprintf(r.out, "Skipping PDF compilation\n")
		return nil
	}

	logOutput, err := rendering.CompilePDF(texSource, outputPath)
	if err != nil {
		if r.opts.Verbose && logOutput != "" {
			fmt.Fprintf(r.out, "pdflatex output:\n%s\n", logOutput)
		}
		return err
	}
	fmt.Fprintf(r.out, "Cover letter PDF written: %s\n", outputPath)
	return nil
}

// resolveInput returns the in-memory predecessor output when that stage ran
// in this invocation, otherwise loads the most recent matching artifact.
func (r *runner) resolveInput(current *types.Resume, label, producedBy string) (*types.Resume, error) {
	if current != nil {
		return current, nil
	}

	var loaded types.Resume
	path, ok, err := r.store.LoadLatest(r.jobName, label, &loaded)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no %s output found for %q in %s, run earlier steps first", producedBy, r.jobName, r.opts.OutputDir)
	}
	fmt.Fprintf(r.out, "Using existing %s output: %s\n", producedBy, path)
	return &loaded, nil
}

// saveArtifact persists a stage output and schema-checks it. Schema
// violations are reported as warnings; the document is kept either way.
func (r *runner) saveArtifact(label string, resume *types.Resume) (string, error) {
	path, err := r.store.Save(r.jobName, label, resume)
	if err != nil {
		return "", err
	}

	if data, err := json.Marshal(resume); err == nil {
		if err := schemas.ValidateResumeDocument(string(data)); err != nil {
			fmt.Fprintf(r.out, "Warning: %s artifact failed schema validation: %v\n", label, err)
		}
	}

	if r.opts.Verbose {
		r.printer.PrintStageResult(label, path)
	}
	return path, nil
}

// jobStem derives the job name from the description filename
func jobStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
