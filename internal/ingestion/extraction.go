// Package ingestion converts resume documents of heterogeneous formats into
// plain text and validates the result before it reaches generation.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// Format identifies a supported input document format.
type Format string

// Supported input formats, detected by file extension.
const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatWord Format = "word"
)

// MinContentLength is the minimum trimmed length for extracted resume text.
// Shorter content almost always means an empty or corrupt extraction.
const MinContentLength = 100

var formatsByExtension = map[string]Format{
	".txt":  FormatText,
	".pdf":  FormatPDF,
	".docx": FormatWord,
	".doc":  FormatWord,
}

func supportedList() string {
	return ".txt, .pdf, .docx, .doc"
}

// DetectFormat maps a file path to its declared format by extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatsByExtension[ext]
	if !ok {
		return "", &UnsupportedFormatError{Extension: ext}
	}
	return format, nil
}

// ExtractText reads a resume file and returns its plain-text content.
// The format is inferred from the file extension.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", &NotFoundError{Path: path}
	}

	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatText:
		return extractPlainText(path)
	case FormatPDF:
		return extractPDF(path)
	case FormatWord:
		return extractWord(path)
	default:
		return "", &UnsupportedFormatError{Extension: filepath.Ext(path)}
	}
}

// ContentLength returns the number of characters in the text after trimming
// surrounding whitespace. Characters, not bytes: a resume in a multi-byte
// script is measured by what a reader sees.
func ContentLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// ValidateContent reports whether extracted text clears the minimum-length
// sanity gate. This guards against empty or corrupt extraction, nothing more.
func ValidateContent(text string) bool {
	return ContentLength(text) >= MinContentLength
}

// extractPlainText reads a UTF-8 text file verbatim.
func extractPlainText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read text file", Cause: err}
	}
	return string(content), nil
}

// extractPDF extracts text page by page and joins pages with newlines.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	pages := make([]string, 0, reader.NumPage())
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{
				Path:    path,
				Message: fmt.Sprintf("failed to extract text from page %d", pageIndex),
				Cause:   err,
			}
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// extractWord extracts paragraph text in document order, newline-joined.
func extractWord(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to open document", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to stat document", Cause: err}
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to parse document", Cause: err}
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if paragraph, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, fmt.Sprint(paragraph))
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
