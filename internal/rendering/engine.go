// Package rendering compiles generated LaTeX into final document formats by
// shelling out to external tools, with bounded timeouts and guaranteed
// scratch-directory cleanup.
package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultCompileTimeout bounds each external compiler/converter invocation.
	DefaultCompileTimeout = 30 * time.Second
	// DefaultProbeTimeout bounds dependency probes.
	DefaultProbeTimeout = 5 * time.Second

	pdflatexTool = "pdflatex"
	pandocTool   = "pandoc"
)

// Engine renders LaTeX documents. The zero value is not usable; construct
// with NewEngine. Timeouts and the scratch base directory are fields so the
// timeout and cleanup contracts stay testable.
type Engine struct {
	// CompileTimeout bounds each pdflatex/pandoc invocation.
	CompileTimeout time.Duration
	// ProbeTimeout bounds dependency probes.
	ProbeTimeout time.Duration
	// ScratchBase is where per-call scratch directories are created.
	// Empty means the OS default temp directory.
	ScratchBase string
}

// NewEngine returns an Engine with the default timeouts.
func NewEngine() *Engine {
	return &Engine{
		CompileTimeout: DefaultCompileTimeout,
		ProbeTimeout:   DefaultProbeTimeout,
	}
}

// SaveSource writes the LaTeX source verbatim to path, creating parent
// directories as needed. No compilation is performed.
func (e *Engine) SaveSource(latex, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(latex), 0644); err != nil {
		return "", fmt.Errorf("failed to write LaTeX source: %w", err)
	}
	return path, nil
}
