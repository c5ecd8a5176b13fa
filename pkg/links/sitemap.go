package links

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recording-transcripts/pkg/httpclient"
)

// XML structures for parsing sitemap XML

// urlSet represents a regular sitemap structure
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

// urlEntry represents a single URL entry in XML
type urlEntry struct {
	Location string `xml:"loc"`
}

// sitemapIndex represents a sitemap index structure
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// sitemapRef represents a reference to another sitemap in an index
type sitemapRef struct {
	Location string `xml:"loc"`
}

// SitemapSource harvests recording share URLs from an XML sitemap.
// Sitemap indexes are followed one level deep.
type SitemapSource struct {
	client *httpclient.HTTPClient
}

// NewSitemapSource creates a new sitemap source
func NewSitemapSource() *SitemapSource {
	return &SitemapSource{
		client: httpclient.NewClient(httpclient.BrowserClient),
	}
}

// Fetch fetches and parses a sitemap from the given URL
func (s *SitemapSource) Fetch(ref string) ([]string, error) {
	body, err := s.fetch(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}

	urls, err := s.parse(body, true)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found in sitemap")
	}

	return urls, nil
}

// parse decodes sitemap XML; followIndex controls whether a sitemap index is
// resolved by fetching each referenced sitemap (one level only)
func (s *SitemapSource) parse(body []byte, followIndex bool) ([]string, error) {
	var set urlSet
	if err := xml.Unmarshal(body, &set); err == nil && len(set.URLs) > 0 {
		urls := make([]string, 0, len(set.URLs))
		for _, entry := range set.URLs {
			loc := strings.TrimSpace(entry.Location)
			if loc != "" {
				urls = append(urls, loc)
			}
		}
		return urls, nil
	}

	if !followIndex {
		return nil, fmt.Errorf("not a urlset sitemap")
	}

	var index sitemapIndex
	if err := xml.Unmarshal(body, &index); err != nil || len(index.Sitemaps) == 0 {
		return nil, fmt.Errorf("content is neither a urlset nor a sitemap index")
	}

	var urls []string
	for _, refEntry := range index.Sitemaps {
		loc := strings.TrimSpace(refEntry.Location)
		if loc == "" {
			continue
		}
		child, err := s.fetch(loc)
		if err != nil {
			// Best-effort: a missing child sitemap should not sink the rest
			continue
		}
		childURLs, err := s.parse(child, false)
		if err != nil {
			continue
		}
		urls = append(urls, childURLs...)
	}
	return urls, nil
}

// fetch downloads the sitemap body
func (s *SitemapSource) fetch(sitemapURL string) ([]byte, error) {
	resp, err := s.client.Get(sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
