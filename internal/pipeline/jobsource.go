package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-forge/internal/fetch"
	"github.com/jonathan/resume-forge/internal/ingestion"
)

// JobSourceKind tags how a job description value should be interpreted.
type JobSourceKind string

// Job source kinds. Auto sniffs the filesystem and exists for callers that
// cannot tag their input; tagged kinds avoid the ambiguity entirely.
const (
	JobSourceLiteral JobSourceKind = "literal"
	JobSourceFile    JobSourceKind = "file"
	JobSourceURL     JobSourceKind = "url"
	JobSourceAuto    JobSourceKind = "auto"
)

// JobSource is a tagged job description input.
type JobSource struct {
	Kind  JobSourceKind
	Value string
}

// JobText wraps a literal job description.
func JobText(text string) JobSource {
	return JobSource{Kind: JobSourceLiteral, Value: text}
}

// JobFile references a job description file in any supported format.
func JobFile(path string) JobSource {
	return JobSource{Kind: JobSourceFile, Value: path}
}

// JobURL references a job posting to fetch.
func JobURL(url string) JobSource {
	return JobSource{Kind: JobSourceURL, Value: url}
}

// JobAuto defers interpretation: the value is treated as a file path when it
// names an existing file, literal text otherwise.
func JobAuto(value string) JobSource {
	return JobSource{Kind: JobSourceAuto, Value: value}
}

// resolve turns a job source into plain text.
func (s JobSource) resolve(ctx context.Context, useBrowser bool) (string, error) {
	switch s.Kind {
	case JobSourceLiteral:
		return s.Value, nil
	case JobSourceFile:
		return ingestion.ExtractText(s.Value)
	case JobSourceURL:
		return fetch.JobPosting(ctx, s.Value, useBrowser)
	case JobSourceAuto:
		return ingestion.ResolveJobText(s.Value)
	default:
		return "", fmt.Errorf("unknown job source kind: %q", s.Kind)
	}
}
