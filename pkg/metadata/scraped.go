package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"

	"recording-transcripts/pkg/domain"
	"recording-transcripts/pkg/httpclient"
)

// datePattern matches the first YYYY-MM-DD substring anywhere in the page
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ScrapedResolver fetches the share page and pattern-matches it for a title
// and a recording date
type ScrapedResolver struct {
	client *httpclient.HTTPClient
}

// NewScrapedResolver creates a resolver that scrapes share pages with the
// standard page timeout
func NewScrapedResolver() *ScrapedResolver {
	return &ScrapedResolver{
		client: httpclient.NewClient(httpclient.BrowserClient),
	}
}

// Resolve fetches the share page and extracts title and date. Any network or
// parse failure degrades to fallback metadata with StatusError and the
// current wall-clock date; no retries are attempted.
func (r *ScrapedResolver) Resolve(ctx context.Context, rec domain.LinkRecord) domain.Metadata {
	meta := domain.Metadata{
		VideoID:    rec.VideoID,
		URL:        rec.URL,
		Index:      rec.Index,
		Title:      DefaultTitle,
		RecordDate: time.Now().Format("2006-01-02"),
		Status:     domain.StatusError,
	}

	html, err := r.fetchHTML(ctx, rec.URL)
	if err != nil {
		logrus.Warnf("metadata: failed to fetch share page %s: %v", rec.URL, err)
		return meta
	}

	if title, err := extractTitle(html); err == nil {
		meta.Title = title
	}
	if date := datePattern.FindString(html); date != "" {
		meta.RecordDate = date
	}
	meta.Status = domain.StatusAvailable

	return meta
}

// fetchHTML fetches the share page content
func (r *ScrapedResolver) fetchHTML(ctx context.Context, url string) (string, error) {
	resp, err := r.client.GetContext(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if strings.TrimSpace(string(body)) == "" {
		return "", fmt.Errorf("empty response body")
	}

	return string(body), nil
}

// extractTitle extracts the recording title from share-page HTML with
// fallback mechanisms
func extractTitle(htmlContent string) (string, error) {
	// Try the <title> tag first: share pages carry the recording topic there
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	// Fallback: readability's title heuristics
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		if title := strings.TrimSpace(article.Title); title != "" {
			return title, nil
		}
	}

	// Try <h1> tag (often the main heading)
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	// Try meta property="og:title"
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}
