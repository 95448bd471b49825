package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveJobText_LiteralText(t *testing.T) {
	literal := "We are looking for a backend engineer with Go and PostgreSQL experience."

	text, err := ResolveJobText(literal)
	require.NoError(t, err)
	assert.Equal(t, literal, text)
}

func TestResolveJobText_ExistingFile(t *testing.T) {
	content := "Backend engineer role. Responsibilities include API design and on-call rotation."
	path := writeTempFile(t, "job.txt", content)

	text, err := ResolveJobText(path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestResolveJobText_ExistingFileUnsupportedFormat(t *testing.T) {
	// A path that exists but has an unrecognized extension is routed through
	// extraction and fails there, rather than being treated as literal text.
	path := writeTempFile(t, "job.html", "<p>job description</p>")

	_, err := ResolveJobText(path)
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}
