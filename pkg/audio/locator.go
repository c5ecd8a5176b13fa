package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"recording-transcripts/pkg/httpclient"
)

// audioPatterns is the ordered list of heuristics used to spot an audio asset
// URL inside share-page HTML. Direct file extensions first, then the looser
// "audio"/"recording" substrings, which can match incidental URLs; the
// locator is best-effort and performs no playability validation.
var audioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://[^"]*\.mp3[^"]*`),
	regexp.MustCompile(`https://[^"]*\.m4a[^"]*`),
	regexp.MustCompile(`https://[^"]*audio[^"]*`),
	regexp.MustCompile(`https://[^"]*recording[^"]*`),
}

// Locator fetches a share page and scans it for an audio asset URL
type Locator struct {
	client *httpclient.HTTPClient
}

// NewLocator creates a locator using the standard page timeout
func NewLocator() *Locator {
	return &Locator{
		client: httpclient.NewClient(httpclient.BrowserClient),
	}
}

// Locate fetches the share page and returns the first match of the first
// pattern that matches anything, or the empty string when no pattern matches.
// Network errors are returned so the caller can decide how loudly to log; the
// result is none either way.
func (l *Locator) Locate(ctx context.Context, shareURL string) (string, error) {
	resp, err := l.client.GetContext(ctx, shareURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch share page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return FindAudioURL(string(body)), nil
}

// FindAudioURL scans HTML for an audio asset URL using the ordered pattern
// list. Returns the empty string when nothing matches.
func FindAudioURL(html string) string {
	for _, pattern := range audioPatterns {
		if match := pattern.FindString(html); match != "" {
			return match
		}
	}
	return ""
}
