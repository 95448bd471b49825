// Package generation drives the two-pass draft/review protocol that turns
// resume and job text into a cleaned LaTeX document.
package generation

import (
	"context"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
)

const promptFile = "generation.json"

// Request carries everything one generation needs. Constructed fresh per
// invocation and never mutated.
type Request struct {
	ResumeText         string
	JobText            string
	Template           string
	Instructions       string // static authoring instruction block
	CustomInstructions string // optional, appended verbatim to Instructions
	TwoPass            bool
}

// Result is the cleaned markup plus fidelity metadata. Degraded is set when
// the review pass failed and the draft was substituted.
type Result struct {
	LaTeX    string
	Degraded bool
	Warning  string
}

// WarnFunc receives non-fatal warnings (currently only review-pass failures).
type WarnFunc func(message string)

// Generator issues generation requests against an llm.Client.
type Generator struct {
	client     llm.Client
	draftTier  llm.ModelTier
	reviewTier llm.ModelTier
	onWarn     WarnFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithTiers overrides the model tiers used for the draft and review passes.
func WithTiers(draft, review llm.ModelTier) Option {
	return func(g *Generator) {
		g.draftTier = draft
		g.reviewTier = review
	}
}

// WithWarnFunc installs a warning side channel.
func WithWarnFunc(fn WarnFunc) Option {
	return func(g *Generator) {
		g.onWarn = fn
	}
}

// New creates a Generator. The review pass runs on the advanced tier since it
// performs structural self-repair on the draft.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:     client,
		draftTier:  llm.TierStandard,
		reviewTier: llm.TierAdvanced,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the draft pass, and when requested, the review pass.
//
// A draft failure is fatal and returned as a GenerationError. A review
// failure is not: the cleaned draft is returned with Degraded set and the
// failure is reported through the warning channel. A usable draft beats a
// pipeline abort.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	raw, err := g.client.GenerateText(ctx, g.draftPrompt(req), g.draftTier)
	if err != nil {
		return nil, &GenerationError{Message: "draft pass failed", Cause: err}
	}

	result := &Result{LaTeX: CleanResponse(raw)}
	if !req.TwoPass {
		return result, nil
	}

	reviewed, err := g.client.GenerateText(ctx, g.reviewPrompt(req.Template, result.LaTeX), g.reviewTier)
	if err != nil {
		passErr := &ValidationPassError{Cause: err}
		result.Degraded = true
		result.Warning = passErr.Error()
		if g.onWarn != nil {
			g.onWarn(passErr.Error())
		}
		return result, nil
	}

	result.LaTeX = CleanResponse(reviewed)
	return result, nil
}

// draftPrompt assembles the first-pass prompt: instructions (plus any custom
// additions), resume, job, template, and the emit-only-markup directive, in
// that fixed order.
func (g *Generator) draftPrompt(req Request) string {
	instructions := req.Instructions
	if req.CustomInstructions != "" {
		instructions += prompts.Format(
			prompts.MustGet(promptFile, "custom_instructions_suffix"),
			map[string]string{"Custom": req.CustomInstructions},
		)
	}

	return prompts.Format(prompts.MustGet(promptFile, "draft"), map[string]string{
		"Instructions": instructions,
		"Resume":       req.ResumeText,
		"Job":          req.JobText,
		"Template":     req.Template,
	})
}

// reviewPrompt assembles the second-pass prompt: the draft output plus the
// original template and the fixed review rubric.
func (g *Generator) reviewPrompt(template, latex string) string {
	return prompts.Format(prompts.MustGet(promptFile, "review"), map[string]string{
		"Template": template,
		"LaTeX":    latex,
	})
}
