package ingestion

import "os"

// ResolveJobText resolves a job description given either as literal text or
// as a path to a file in any supported format.
//
// A value that does not name an existing file is returned unchanged. This
// dual interpretation is a convenience for callers that cannot tag their
// input; a literal description that happens to match a filename on disk will
// be read as a file. Callers that know the input kind should use the tagged
// job sources at the pipeline boundary instead.
func ResolveJobText(value string) (string, error) {
	if _, err := os.Stat(value); err != nil {
		return value, nil
	}
	return ExtractText(value)
}
