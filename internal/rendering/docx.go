package rendering

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RenderDOCX converts LaTeX source to a Word document at outputPath using
// pandoc in standalone mode. The temporary .tex input is removed regardless
// of outcome. Failure kinds: ToolMissingError when pandoc is absent,
// ConversionError for anything else.
func (e *Engine) RenderDOCX(ctx context.Context, latex, outputPath string) (string, error) {
	if _, err := exec.LookPath(pandocTool); err != nil {
		return "", &ToolMissingError{
			Tool:     pandocTool,
			Guidance: "Please install Pandoc to enable Word document generation. Visit: https://pandoc.org/installing.html",
		}
	}

	tmp, err := os.CreateTemp(e.ScratchBase, "resume-forge-*.tex")
	if err != nil {
		return "", &ConversionError{Message: "failed to create temporary LaTeX file", Cause: err}
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(latex); err != nil {
		_ = tmp.Close()
		return "", &ConversionError{Message: "failed to write temporary LaTeX file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &ConversionError{Message: "failed to close temporary LaTeX file", Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", &ConversionError{Message: "failed to create output directory", Cause: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, e.CompileTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, pandocTool, tmpPath, "--standalone", "-o", outputPath)
	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return "", &TimeoutError{Tool: pandocTool, Timeout: e.CompileTimeout}
		}
		detail := strings.TrimSpace(output.String())
		if detail == "" {
			detail = "pandoc invocation failed"
		}
		return "", &ConversionError{Message: detail, Cause: err}
	}

	return outputPath, nil
}
