// Package templates carries the static LaTeX resume template and the
// natural-language authoring instructions handed to the generation client.
// Both are opaque configuration blobs; swapping them changes pipeline
// behavior without touching pipeline code.
package templates

import (
	_ "embed"
	"os"
)

//go:embed one_page_resume.tex
var defaultTemplate string

//go:embed authoring_instructions.txt
var authoringInstructions string

// Default returns the built-in one-page LaTeX resume template.
func Default() string {
	return defaultTemplate
}

// Instructions returns the static authoring instruction block that precedes
// every draft prompt.
func Instructions() string {
	return authoringInstructions
}

// Load reads a replacement template from disk, falling back to the built-in
// template when path is empty.
func Load(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
