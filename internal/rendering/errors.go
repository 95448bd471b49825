package rendering

import (
	"fmt"
	"time"
)

// ToolMissingError indicates an external tool (pdflatex, pandoc) could not be
// located. Guidance carries installation instructions for the user.
type ToolMissingError struct {
	Tool     string
	Guidance string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s not found in PATH. %s", e.Tool, e.Guidance)
}

// TimeoutError indicates an external tool exceeded its invocation bound.
type TimeoutError struct {
	Tool    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Tool, e.Timeout)
}

// CompilationError indicates pdflatex ran but produced no PDF. Detail holds
// the first error line scraped from the compiler log when one exists.
type CompilationError struct {
	Detail string
	Cause  error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation failed: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation failed: %s", e.Detail)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// ConversionError wraps a document-converter failure other than absence.
type ConversionError struct {
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document conversion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document conversion failed: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
