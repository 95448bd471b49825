// Package pipeline sequences extraction, generation, and rendering into one
// resume customization run and normalizes every failure into a result value.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/generation"
	"github.com/jonathan/resume-forge/internal/ingestion"
	"github.com/jonathan/resume-forge/internal/templates"
)

// OutputFormat selects the terminal artifact of a run.
type OutputFormat string

// Supported output formats.
const (
	FormatPDF  OutputFormat = "pdf"
	FormatDOCX OutputFormat = "docx"
	FormatTeX  OutputFormat = "tex"
)

// UnsupportedOutputFormatError indicates a requested output format outside
// the supported set.
type UnsupportedOutputFormatError struct {
	Format OutputFormat
}

func (e *UnsupportedOutputFormatError) Error() string {
	return fmt.Sprintf("unsupported output format: %s (supported: %s, %s, %s)", e.Format, FormatPDF, FormatDOCX, FormatTeX)
}

// Generator is the generation seam; satisfied by *generation.Generator.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// Renderer is the rendering seam; satisfied by *rendering.Engine.
type Renderer interface {
	RenderPDF(ctx context.Context, latex, outputPath string) (string, error)
	RenderDOCX(ctx context.Context, latex, outputPath string) (string, error)
	SaveSource(latex, path string) (string, error)
}

// ProgressEvent reports a pipeline step to the caller.
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressFunc is called as the pipeline advances.
type ProgressFunc func(event ProgressEvent)

// RunOptions holds everything one customization run needs.
type RunOptions struct {
	ResumePath         string
	Job                JobSource
	OutputPath         string
	Format             OutputFormat
	CustomInstructions string
	KeepSource         bool
	TwoPass            bool
	UseBrowser         bool
	Template           string // resolved template text; empty means built-in
	Instructions       string // authoring instructions; empty means built-in
	OnProgress         ProgressFunc
}

// Result is the terminal shape of a run; the stable contract for any CLI or
// service layered on top.
type Result struct {
	RunID      string
	Success    bool
	OutputPath string
	SourcePath string
	Degraded   bool
	Warning    string
	Err        string
}

// Runner executes customization runs.
type Runner struct {
	gen      Generator
	renderer Renderer
}

// NewRunner creates a Runner over the given collaborators.
func NewRunner(gen Generator, renderer Renderer) *Runner {
	return &Runner{gen: gen, renderer: renderer}
}

// Run executes the pipeline. It never returns an error: every lower-layer
// failure is flattened into the result's Err field here and nowhere else.
func (r *Runner) Run(ctx context.Context, opts RunOptions) Result {
	result := Result{RunID: uuid.NewString()}

	if err := r.run(ctx, opts, &result); err != nil {
		result.Success = false
		result.Err = err.Error()
		return result
	}

	result.Success = true
	return result
}

func (r *Runner) run(ctx context.Context, opts RunOptions, result *Result) error {
	emit := func(step, message string) {
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{RunID: result.RunID, Step: step, Message: message})
		}
	}

	// 1. Extract resume text and gate on content length before any external
	// cost is incurred.
	emit("extract", "extracting resume text from "+opts.ResumePath)
	resumeText, err := ingestion.ExtractText(opts.ResumePath)
	if err != nil {
		return err
	}
	if !ingestion.ValidateContent(resumeText) {
		return &ingestion.ContentTooShortError{Length: ingestion.ContentLength(resumeText)}
	}

	// 2. Resolve the job description.
	emit("resolve_job", "resolving job description")
	jobText, err := opts.Job.resolve(ctx, opts.UseBrowser)
	if err != nil {
		return err
	}

	// 3. Generate the LaTeX document.
	emit("generate", "generating customized resume")
	template := opts.Template
	if template == "" {
		template = templates.Default()
	}
	instructions := opts.Instructions
	if instructions == "" {
		instructions = templates.Instructions()
	}

	genResult, err := r.gen.Generate(ctx, generation.Request{
		ResumeText:         resumeText,
		JobText:            jobText,
		Template:           template,
		Instructions:       instructions,
		CustomInstructions: opts.CustomInstructions,
		TwoPass:            opts.TwoPass,
	})
	if err != nil {
		return err
	}
	result.Degraded = genResult.Degraded
	result.Warning = genResult.Warning
	if genResult.Degraded {
		emit("generate", genResult.Warning)
	}

	// 4. Persist the LaTeX source when requested or when it is the output.
	// The source path is recorded before rendering so it survives a later
	// rendering failure.
	if opts.KeepSource || opts.Format == FormatTeX {
		sourcePath := sourcePathFor(opts.OutputPath)
		emit("save_source", "saving LaTeX source to "+sourcePath)
		if _, err := r.renderer.SaveSource(genResult.LaTeX, sourcePath); err != nil {
			return err
		}
		result.SourcePath = sourcePath
	}

	// 5. For raw-markup output the source is the artifact; rendering never runs.
	if opts.Format == FormatTeX {
		result.OutputPath = result.SourcePath
		return nil
	}

	// 6. Render the requested document format.
	emit("render", "rendering "+string(opts.Format))
	switch opts.Format {
	case FormatPDF:
		result.OutputPath, err = r.renderer.RenderPDF(ctx, genResult.LaTeX, opts.OutputPath)
	case FormatDOCX:
		result.OutputPath, err = r.renderer.RenderDOCX(ctx, genResult.LaTeX, opts.OutputPath)
	default:
		return &UnsupportedOutputFormatError{Format: opts.Format}
	}
	return err
}

// sourcePathFor swaps the output path's extension for .tex.
func sourcePathFor(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".tex"
}
