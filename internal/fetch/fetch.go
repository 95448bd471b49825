// Package fetch retrieves job postings from URLs and reduces the HTML to the
// posting's main text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies the tool to job boards.
const defaultUserAgent = "Mozilla/5.0 (compatible; ResumeForge/1.0)"

// Error represents a failure while fetching a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTML retrieves the raw HTML of a page.
func HTML(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return string(body), nil
}

// jobPostingSelectors are tried in order; the first match wins, with a
// fallback to the document body.
var jobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractJobText parses HTML and returns the job posting's main text with
// navigation and boilerplate elements removed.
func ExtractJobText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .sidebar, .cookie-banner, .popup").Remove()

	var content *goquery.Selection
	for _, selector := range jobPostingSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return collapseWhitespace(content.Text()), nil
}

// JobPosting fetches a URL and extracts the posting text. When the plain
// HTTP fetch yields too little text and useBrowser is set, the page is
// re-rendered in a headless browser before extraction.
func JobPosting(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	html, err := HTML(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractJobText(html)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
	}

	if useBrowser && NeedsBrowser(text) {
		rendered, err := RenderWithBrowser(ctx, urlStr, DefaultTimeout)
		if err != nil {
			return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
		}
		text, err = ExtractJobText(rendered)
		if err != nil {
			return "", &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
		}
	}

	return text, nil
}

func collapseWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
