package ingestion

import "fmt"

// NotFoundError indicates the input file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// UnsupportedFormatError indicates the file extension is not a recognized
// resume format.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (supported: %s)", e.Extension, supportedList())
}

// ExtractionError wraps a parser-library failure with its original cause.
type ExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.Path, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ContentTooShortError indicates extracted text failed the minimum-length
// sanity gate.
type ContentTooShortError struct {
	Length int
}

func (e *ContentTooShortError) Error() string {
	return fmt.Sprintf("resume content is too short or empty (%d characters after trimming, need at least %d)", e.Length, MinContentLength)
}
