package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"recording-transcripts/pkg/httpclient"
)

var (
	ErrEmptyPageHTML         = errors.New("share page HTML is empty")
	ErrNoTranscriptLink      = errors.New("no transcript link found on share page")
	ErrUnsupportedTranscript = errors.New("unsupported transcript document type")
	ErrEmptyTranscriptText   = errors.New("extracted transcript text is empty")
)

// DocumentExtractor pulls a ready-made transcript document (.txt or .pdf)
// linked from a share page, as a fast path that skips audio download and
// speech recognition entirely. Everything here is best-effort: callers fall
// back to the audio stages on any error.
type DocumentExtractor struct {
	client *httpclient.HTTPClient
}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{
		client: httpclient.NewClient(httpclient.BrowserClient),
	}
}

// FromSharePage fetches the share page, looks for a transcript document link
// and, when one is present, downloads and extracts its plain text. Relative
// links are resolved against the share URL.
func (d *DocumentExtractor) FromSharePage(ctx context.Context, shareURL string) (string, error) {
	pageBytes, _, err := d.fetch(ctx, shareURL)
	if err != nil {
		return "", fmt.Errorf("fetch share page: %w", err)
	}

	href, err := FindTranscriptLink(string(pageBytes))
	if err != nil {
		return "", err
	}

	docURL, err := resolveAgainst(shareURL, href)
	if err != nil {
		return "", fmt.Errorf("resolve transcript link: %w", err)
	}

	body, contentType, err := d.fetch(ctx, docURL)
	if err != nil {
		return "", fmt.Errorf("fetch transcript document: %w", err)
	}

	text, err := extractDocumentText(docURL, contentType, body)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyTranscriptText
	}
	return text, nil
}

// fetch downloads a URL and returns the body and content type
func (d *DocumentExtractor) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	resp, err := d.client.GetContext(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// FindTranscriptLink locates the most transcript-looking <a href> in the
// page HTML. Candidates are ranked:
//  1. anchor text mentions a transcript AND the href is a .txt/.pdf document
//  2. href is a .txt/.pdf document
//  3. anchor text mentions a transcript
//
// The first candidate of the best non-empty tier wins.
func FindTranscriptLink(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", ErrEmptyPageHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse share page HTML: %w", err)
	}

	type candidate struct {
		href string
		text string
	}

	var (
		high []candidate
		med  []candidate
		low  []candidate
	)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		text := strings.TrimSpace(sel.Text())
		docLike := isTranscriptDocumentHref(href)
		textLike := anchorMentionsTranscript(text)

		c := candidate{href: href, text: text}
		switch {
		case docLike && textLike:
			high = append(high, c)
		case docLike:
			med = append(med, c)
		case textLike:
			low = append(low, c)
		}
	})

	switch {
	case len(high) > 0:
		return high[0].href, nil
	case len(med) > 0:
		return med[0].href, nil
	case len(low) > 0:
		return low[0].href, nil
	default:
		return "", ErrNoTranscriptLink
	}
}

// anchorMentionsTranscript returns true if the anchor text clearly refers to
// a transcript, in either English or Japanese
func anchorMentionsTranscript(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "transcript") || strings.Contains(text, "文字起こし")
}

// isTranscriptDocumentHref returns true if the href looks like a transcript
// document worth fetching (.txt or .pdf)
func isTranscriptDocumentHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return hasTranscriptExt(href)
	}
	return hasTranscriptExt(u.Path)
}

func hasTranscriptExt(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}

// extractDocumentText converts the downloaded document to plain text, keyed
// on the URL extension with the content type as fallback
func extractDocumentText(docURL, contentType string, body []byte) (string, error) {
	ext := strings.ToLower(path.Ext(urlPath(docURL)))
	switch ext {
	case ".txt":
		return string(body), nil
	case ".pdf":
		return extractTextFromPDFBytes(body)
	}

	lct := strings.ToLower(contentType)
	switch {
	case strings.Contains(lct, "text/plain"):
		return string(body), nil
	case strings.Contains(lct, "application/pdf"):
		return extractTextFromPDFBytes(body)
	default:
		return "", ErrUnsupportedTranscript
	}
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}

func resolveAgainst(baseURL, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoTranscriptLink
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

func extractTextFromPDFBytes(pdfBytes []byte) (string, error) {
	if len(pdfBytes) == 0 {
		return "", errors.New("empty pdf bytes")
	}

	r := bytes.NewReader(pdfBytes)
	doc, err := pdf.NewReader(r, int64(len(pdfBytes)))
	if err != nil {
		return "", err
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", err
	}

	return buf.String(), nil
}
