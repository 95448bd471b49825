package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/generation"
	"github.com/jonathan/resume-forge/internal/rendering"
)

type fakeGenerator struct {
	calls   int
	result  *generation.Result
	err     error
	lastReq generation.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req generation.Request) (*generation.Result, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &generation.Result{LaTeX: "\\documentclass{article}"}, nil
}

type fakeRenderer struct {
	pdfCalls  int
	docxCalls int
	saveCalls int
	savedPath string
	saveErr   error
	renderErr error
}

func (f *fakeRenderer) RenderPDF(_ context.Context, _, outputPath string) (string, error) {
	f.pdfCalls++
	if f.renderErr != nil {
		return "", f.renderErr
	}
	return outputPath, nil
}

func (f *fakeRenderer) RenderDOCX(_ context.Context, _, outputPath string) (string, error) {
	f.docxCalls++
	if f.renderErr != nil {
		return "", f.renderErr
	}
	return outputPath, nil
}

func (f *fakeRenderer) SaveSource(_, path string) (string, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.savedPath = path
	return path, nil
}

func writeResume(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func validResumeText() string {
	return strings.Repeat("Experienced software engineer. ", 5)
}

func TestRunShortResumeAbortsBeforeGeneration(t *testing.T) {
	gen := &fakeGenerator{}
	renderer := &fakeRenderer{}
	runner := NewRunner(gen, renderer)

	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, "too short"),
		Job:        JobText("Some job description for a role."),
		OutputPath: filepath.Join(t.TempDir(), "out.pdf"),
		Format:     FormatPDF,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "too short")
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, renderer.pdfCalls)
	assert.NotEmpty(t, result.RunID)
}

func TestRunMissingResumeFails(t *testing.T) {
	gen := &fakeGenerator{}
	runner := NewRunner(gen, &fakeRenderer{})

	result := runner.Run(context.Background(), RunOptions{
		ResumePath: filepath.Join(t.TempDir(), "nope.txt"),
		Job:        JobText("A job."),
		OutputPath: "out.pdf",
		Format:     FormatPDF,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "not found")
	assert.Equal(t, 0, gen.calls)
}

func TestRunTexOutputSkipsRendering(t *testing.T) {
	gen := &fakeGenerator{}
	renderer := &fakeRenderer{}
	runner := NewRunner(gen, renderer)

	outputPath := filepath.Join(t.TempDir(), "resume.tex")
	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("Backend engineer role focused on Go services and infrastructure."),
		OutputPath: outputPath,
		Format:     FormatTeX,
		KeepSource: true,
	})

	assert.True(t, result.Success)
	assert.Empty(t, result.Err)
	assert.Equal(t, outputPath, result.SourcePath)
	assert.Equal(t, result.SourcePath, result.OutputPath)
	assert.Equal(t, 1, renderer.saveCalls)
	assert.Equal(t, 0, renderer.pdfCalls)
	assert.Equal(t, 0, renderer.docxCalls)
}

func TestRunPDFPassesResolvedInputsToGenerator(t *testing.T) {
	gen := &fakeGenerator{}
	renderer := &fakeRenderer{}
	runner := NewRunner(gen, renderer)

	outputPath := filepath.Join(t.TempDir(), "resume.pdf")
	result := runner.Run(context.Background(), RunOptions{
		ResumePath:         writeResume(t, validResumeText()),
		Job:                JobText("Platform engineer posting."),
		OutputPath:         outputPath,
		Format:             FormatPDF,
		CustomInstructions: "emphasize Go",
		TwoPass:            true,
	})

	require.True(t, result.Success, result.Err)
	assert.Equal(t, outputPath, result.OutputPath)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, renderer.pdfCalls)
	assert.Equal(t, "Platform engineer posting.", gen.lastReq.JobText)
	assert.Equal(t, "emphasize Go", gen.lastReq.CustomInstructions)
	assert.True(t, gen.lastReq.TwoPass)
	assert.NotEmpty(t, gen.lastReq.Template)
	assert.NotEmpty(t, gen.lastReq.Instructions)
	// Source was not requested, so none is recorded.
	assert.Empty(t, result.SourcePath)
	assert.Equal(t, 0, renderer.saveCalls)
}

func TestRunDOCXUsesDocxRenderer(t *testing.T) {
	renderer := &fakeRenderer{}
	runner := NewRunner(&fakeGenerator{}, renderer)

	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: filepath.Join(t.TempDir(), "resume.docx"),
		Format:     FormatDOCX,
	})

	require.True(t, result.Success, result.Err)
	assert.Equal(t, 1, renderer.docxCalls)
	assert.Equal(t, 0, renderer.pdfCalls)
}

func TestRunUnknownFormatFails(t *testing.T) {
	renderer := &fakeRenderer{}
	runner := NewRunner(&fakeGenerator{}, renderer)

	outputPath := filepath.Join(t.TempDir(), "resume.html")
	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: outputPath,
		Format:     OutputFormat("html"),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "unsupported output format: html")
	assert.Equal(t, 0, renderer.pdfCalls)
	assert.Equal(t, 0, renderer.docxCalls)
	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunKeepSourceSurvivesRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{renderErr: errors.New("pdflatex exploded")}
	runner := NewRunner(&fakeGenerator{}, renderer)

	outputPath := filepath.Join(t.TempDir(), "resume.pdf")
	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: outputPath,
		Format:     FormatPDF,
		KeepSource: true,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "pdflatex exploded")
	assert.Equal(t, sourcePathFor(outputPath), result.SourcePath)
	assert.Equal(t, 1, renderer.saveCalls)
}

func TestRunGenerationFailureSkipsRendering(t *testing.T) {
	gen := &fakeGenerator{err: &generation.GenerationError{Message: "model unavailable"}}
	renderer := &fakeRenderer{}
	runner := NewRunner(gen, renderer)

	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: "out.pdf",
		Format:     FormatPDF,
		KeepSource: true,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "model unavailable")
	assert.Equal(t, 0, renderer.saveCalls)
	assert.Equal(t, 0, renderer.pdfCalls)
}

func TestRunPropagatesDegradedGeneration(t *testing.T) {
	gen := &fakeGenerator{result: &generation.Result{
		LaTeX:    "\\documentclass{article}",
		Degraded: true,
		Warning:  "validation pass failed, using draft output",
	}}
	runner := NewRunner(gen, &fakeRenderer{})

	var steps []string
	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: filepath.Join(t.TempDir(), "resume.pdf"),
		Format:     FormatPDF,
		TwoPass:    true,
		OnProgress: func(event ProgressEvent) { steps = append(steps, event.Step) },
	})

	require.True(t, result.Success, result.Err)
	assert.True(t, result.Degraded)
	assert.Contains(t, result.Warning, "validation pass failed")
	assert.Contains(t, steps, "extract")
	assert.Contains(t, steps, "render")
}

func TestRunJobFileSource(t *testing.T) {
	gen := &fakeGenerator{}
	runner := NewRunner(gen, &fakeRenderer{})

	jobPath := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("Senior Go engineer posting."), 0644))

	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobFile(jobPath),
		OutputPath: filepath.Join(t.TempDir(), "resume.pdf"),
		Format:     FormatPDF,
	})

	require.True(t, result.Success, result.Err)
	assert.Equal(t, "Senior Go engineer posting.", gen.lastReq.JobText)
}

func TestRunMissingPDFLaTeXEndToEnd(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	engine := rendering.NewEngine()
	runner := NewRunner(&fakeGenerator{}, engine)

	outputPath := filepath.Join(t.TempDir(), "resume.pdf")
	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: outputPath,
		Format:     FormatPDF,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "pdflatex not found")
	_, err := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunPDFLaTeXTimeoutEndToEnd(t *testing.T) {
	binDir := t.TempDir()
	script := "#!/bin/sh\n/bin/sleep 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "pdflatex"), []byte(script), 0755))
	t.Setenv("PATH", binDir)

	engine := rendering.NewEngine()
	engine.CompileTimeout = 100 * time.Millisecond
	engine.ScratchBase = t.TempDir()
	runner := NewRunner(&fakeGenerator{}, engine)

	result := runner.Run(context.Background(), RunOptions{
		ResumePath: writeResume(t, validResumeText()),
		Job:        JobText("A role."),
		OutputPath: filepath.Join(t.TempDir(), "resume.pdf"),
		Format:     FormatPDF,
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "timed out")

	entries, err := os.ReadDir(engine.ScratchBase)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directory should be cleaned up after a timeout")
}

func TestCheckReadiness(t *testing.T) {
	t.Run("nothing available", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		readiness := CheckReadiness(context.Background(), rendering.NewEngine(), "")
		assert.False(t, readiness.PDFLaTeX)
		assert.False(t, readiness.Pandoc)
		assert.False(t, readiness.APIKeySet)
		assert.False(t, readiness.Ready)
	})

	t.Run("everything available", func(t *testing.T) {
		binDir := t.TempDir()
		script := "#!/bin/sh\nexit 0\n"
		require.NoError(t, os.WriteFile(filepath.Join(binDir, "pdflatex"), []byte(script), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(binDir, "pandoc"), []byte(script), 0755))
		t.Setenv("PATH", binDir)

		readiness := CheckReadiness(context.Background(), rendering.NewEngine(), "key")
		assert.True(t, readiness.PDFLaTeX)
		assert.True(t, readiness.Pandoc)
		assert.True(t, readiness.APIKeySet)
		assert.True(t, readiness.Ready)
	})
}

func TestSourcePathFor(t *testing.T) {
	assert.Equal(t, "out/resume.tex", sourcePathFor("out/resume.pdf"))
	assert.Equal(t, "resume.tex", sourcePathFor("resume.docx"))
	assert.Equal(t, "noext.tex", sourcePathFor("noext"))
}
