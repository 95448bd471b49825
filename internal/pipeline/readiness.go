package pipeline

import (
	"context"

	"github.com/jonathan/resume-forge/internal/rendering"
)

// Readiness reports whether the environment can run the full pipeline.
// Each flag is probed independently; Ready is the conjunction.
type Readiness struct {
	PDFLaTeX  bool
	Pandoc    bool
	APIKeySet bool
	Ready     bool
}

// DependencyChecker is the probing seam; satisfied by *rendering.Engine.
type DependencyChecker interface {
	CheckDependencies(ctx context.Context) rendering.DependencyStatus
}

// CheckReadiness probes external tools and credential presence. It never
// fails and blocks no longer than the checker's bounded probe timeouts.
func CheckReadiness(ctx context.Context, checker DependencyChecker, apiKey string) Readiness {
	status := checker.CheckDependencies(ctx)
	readiness := Readiness{
		PDFLaTeX:  status.PDFLaTeX,
		Pandoc:    status.Pandoc,
		APIKeySet: apiKey != "",
	}
	readiness.Ready = readiness.PDFLaTeX && readiness.Pandoc && readiness.APIKeySet
	return readiness
}
