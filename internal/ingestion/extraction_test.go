package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractText_PlainText(t *testing.T) {
	content := strings.Repeat("Senior Go engineer with distributed systems experience. ", 4)
	path := writeTempFile(t, "resume.txt", content)

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
	assert.True(t, ValidateContent(text))
}

func TestExtractText_NotFound(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "resume.odt", "some content")

	_, err := ExtractText(path)
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".odt", unsupported.Extension)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	path := writeTempFile(t, "resume.pdf", "this is not a pdf")

	_, err := ExtractText(path)
	require.Error(t, err)

	var extraction *ExtractionError
	assert.ErrorAs(t, err, &extraction)
}

func TestExtractText_CorruptWordDocument(t *testing.T) {
	path := writeTempFile(t, "resume.docx", "this is not a zip archive")

	_, err := ExtractText(path)
	require.Error(t, err)

	var extraction *ExtractionError
	assert.ErrorAs(t, err, &extraction)
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("resume.PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)

	format, err = DetectFormat("resume.doc")
	require.NoError(t, err)
	assert.Equal(t, FormatWord, format)

	_, err = DetectFormat("resume")
	require.Error(t, err)
}

func TestValidateContent(t *testing.T) {
	assert.False(t, ValidateContent(""))
	assert.False(t, ValidateContent("   \n\t  "))
	assert.False(t, ValidateContent(strings.Repeat("a", MinContentLength-1)))
	assert.True(t, ValidateContent(strings.Repeat("a", MinContentLength)))

	// Surrounding whitespace does not count toward the minimum.
	padded := "  \n" + strings.Repeat("a", MinContentLength-1) + "\n  "
	assert.False(t, ValidateContent(padded))
}

func TestValidateContent_CountsCharactersNotBytes(t *testing.T) {
	// Each character is three bytes in UTF-8; only the character count gates.
	assert.False(t, ValidateContent(strings.Repeat("简", MinContentLength-1)))
	assert.True(t, ValidateContent(strings.Repeat("简", MinContentLength)))

	assert.Equal(t, MinContentLength-1, ContentLength(strings.Repeat("简", MinContentLength-1)))
}

func TestValidateContent_ShortExtraction(t *testing.T) {
	path := writeTempFile(t, "resume.txt", "too short")

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.False(t, ValidateContent(text))
}
