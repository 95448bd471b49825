package rendering

import (
	"context"
	"os/exec"
)

// DependencyStatus is a read-only snapshot of external-tool availability,
// recomputed on every check and never cached.
type DependencyStatus struct {
	PDFLaTeX bool
	Pandoc   bool
}

// CheckDependencies probes each external tool with a short version call.
// It is purely diagnostic: it never returns an error and never gates normal
// operation.
func (e *Engine) CheckDependencies(ctx context.Context) DependencyStatus {
	return DependencyStatus{
		PDFLaTeX: e.probe(ctx, pdflatexTool, "--version"),
		Pandoc:   e.probe(ctx, pandocTool, "--version"),
	}
}

func (e *Engine) probe(ctx context.Context, tool string, args ...string) bool {
	if _, err := exec.LookPath(tool); err != nil {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, e.ProbeTimeout)
	defer cancel()
	return exec.CommandContext(probeCtx, tool, args...).Run() == nil
}
