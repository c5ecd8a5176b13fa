package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"recording-transcripts/pkg/httpclient"
)

// Fetcher streams audio assets to local files
type Fetcher struct {
	client *httpclient.HTTPClient
}

// NewFetcher creates a fetcher using the longer audio download timeout
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: httpclient.NewClientWithTimeout(httpclient.BrowserClient, httpclient.AudioTimeout),
	}
}

// Download streams the audio URL to destPath, overwriting any existing file.
// The body is copied in chunks so memory stays bounded regardless of file
// size. On failure a truncated file may be left behind; callers remove the
// destination when they are done with it either way.
func (f *Fetcher) Download(ctx context.Context, audioURL, destPath string) error {
	resp, err := f.client.GetContext(ctx, audioURL)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
