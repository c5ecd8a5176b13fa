package links

import (
	"fmt"

	"github.com/mmcdole/gofeed"
)

// RSSSource harvests recording share URLs from an RSS/Atom feed
type RSSSource struct {
	feedParser *gofeed.Parser
}

// NewRSSSource creates a new RSS source
func NewRSSSource() *RSSSource {
	return &RSSSource{
		feedParser: gofeed.NewParser(),
	}
}

// Fetch fetches and parses an RSS/Atom feed from the given URL and returns
// the item links in feed order
func (s *RSSSource) Fetch(ref string) ([]string, error) {
	feed, err := s.feedParser.ParseURL(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	urls := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			urls = append(urls, item.Link)
		}
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no valid URLs found in feed items")
	}

	return urls, nil
}
