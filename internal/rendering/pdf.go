package rendering

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// scratchName is the fixed base name the compiler works on inside the
// scratch directory; pdflatex derives resume.pdf and resume.log from it.
const scratchName = "resume"

// RenderPDF compiles LaTeX source to a PDF at outputPath.
//
// The source is written to a scratch directory and pdflatex is invoked twice
// in non-interactive mode so internal cross-references resolve. The scratch
// directory is removed on every exit path. Failure kinds: ToolMissingError
// when pdflatex is absent, TimeoutError when an invocation exceeds
// CompileTimeout, CompilationError otherwise.
func (e *Engine) RenderPDF(ctx context.Context, latex, outputPath string) (string, error) {
	if _, err := exec.LookPath(pdflatexTool); err != nil {
		return "", &ToolMissingError{
			Tool:     pdflatexTool,
			Guidance: "Please install a LaTeX distribution (e.g. TeX Live, MiKTeX) to enable PDF generation.",
		}
	}

	scratch, err := os.MkdirTemp(e.ScratchBase, "resume-forge-pdf-*")
	if err != nil {
		return "", &CompilationError{Detail: "failed to create scratch directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	texPath := filepath.Join(scratch, scratchName+".tex")
	if err := os.WriteFile(texPath, []byte(latex), 0644); err != nil {
		return "", &CompilationError{Detail: "failed to write LaTeX source", Cause: err}
	}

	// Two passes so \pageref and friends settle.
	for pass := 0; pass < 2; pass++ {
		if err := e.runPDFLaTeX(ctx, scratch, texPath); err != nil {
			return "", err
		}
	}

	artifact, err := os.ReadFile(filepath.Join(scratch, scratchName+".pdf"))
	if err != nil {
		return "", &CompilationError{Detail: "failed to read compiled PDF", Cause: err}
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", &CompilationError{Detail: "failed to create output directory", Cause: err}
	}
	if err := os.WriteFile(outputPath, artifact, 0644); err != nil {
		return "", &CompilationError{Detail: "failed to copy PDF to output path", Cause: err}
	}

	return outputPath, nil
}

// runPDFLaTeX performs one bounded compiler invocation and verifies the
// expected artifact exists afterwards. A nonzero exit with the artifact
// present is treated as success; LaTeX routinely exits nonzero on warnings.
func (e *Engine) runPDFLaTeX(ctx context.Context, scratch, texPath string) error {
	runCtx, cancel := context.WithTimeout(ctx, e.CompileTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, pdflatexTool,
		"-interaction=nonstopmode", "-output-directory", scratch, texPath)

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output
	runErr := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return &TimeoutError{Tool: pdflatexTool, Timeout: e.CompileTimeout}
	}

	if _, err := os.Stat(filepath.Join(scratch, scratchName+".pdf")); os.IsNotExist(err) {
		return &CompilationError{Detail: scrapeLog(scratch), Cause: runErr}
	}
	return nil
}

// scrapeLog returns the first error line from the compiler log, or a generic
// message when the log is absent or contains no error marker. pdflatex
// prefixes error lines with "!".
func scrapeLog(scratch string) string {
	logContent, err := os.ReadFile(filepath.Join(scratch, scratchName+".log"))
	if err != nil {
		return "PDF was not generated"
	}
	for _, line := range strings.Split(string(logContent), "\n") {
		if strings.Contains(line, "!") {
			return "LaTeX error: " + strings.TrimSpace(line)
		}
	}
	return "PDF was not generated"
}
