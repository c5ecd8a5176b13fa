package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"recording-transcripts/pkg/domain"
)

// Source supplies an ordered list of shareable recording URLs.
// ref is source-specific: a file path for FileSource, a feed or sitemap URL
// for the network sources; StaticSource ignores it.
type Source interface {
	Fetch(ref string) ([]string, error)
}

// StaticSource serves a fixed, ordered URL list
type StaticSource struct {
	urls []string
}

// NewStaticSource creates a source backed by the given URL list
func NewStaticSource(urls []string) *StaticSource {
	return &StaticSource{urls: urls}
}

// Fetch returns the configured URLs; ref is ignored
func (s *StaticSource) Fetch(ref string) ([]string, error) {
	if len(s.urls) == 0 {
		return nil, fmt.Errorf("no URLs configured")
	}
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out, nil
}

// Records converts raw URLs into LinkRecords, assigning 1-based indexes and
// deriving the video ID from each URL
func Records(urls []string) []domain.LinkRecord {
	records := make([]domain.LinkRecord, 0, len(urls))
	for i, u := range urls {
		records = append(records, domain.LinkRecord{
			URL:     u,
			Index:   i + 1,
			VideoID: ExtractVideoID(u),
		})
	}
	return records
}

// ExtractVideoID derives the recording identifier from a share URL: the last
// path segment, truncated at its first dot. Malformed URLs (unparseable, or
// no path segments at all) yield an empty ID; the caller's record stays
// usable either way.
func ExtractVideoID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		logrus.Warnf("links: cannot parse URL %s: %v", rawURL, err)
		return ""
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		logrus.Warnf("links: no path segments in URL %s", rawURL)
		return ""
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// Share URLs look like .../share/<id>.<suffix>; the suffix is an access
	// token, not part of the ID.
	return strings.SplitN(last, ".", 2)[0]
}
