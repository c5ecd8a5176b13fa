package metadata

import (
	"context"
	"fmt"
	"time"

	"recording-transcripts/pkg/domain"
)

// DefaultTitle is used whenever a real title cannot be determined
const DefaultTitle = "神威日報技術ミーティング"

// Resolver derives Metadata for one share link. Implementations never fail:
// on any error they return fallback Metadata with Status set to StatusError,
// so the pipeline always has something to attach to the result.
type Resolver interface {
	Resolve(ctx context.Context, rec domain.LinkRecord) domain.Metadata
}

// SyntheticResolver estimates metadata from the link position alone, without
// touching the network. Used where the share-link host is unreachable or a
// dry run is wanted.
type SyntheticResolver struct {
	anchor        time.Time
	totalExpected int
}

// NewSyntheticResolver creates a resolver anchored at the date of the most
// recent recording. totalExpected is the assumed length of the link list.
func NewSyntheticResolver(anchor time.Time, totalExpected int) *SyntheticResolver {
	return &SyntheticResolver{
		anchor:        anchor,
		totalExpected: totalExpected,
	}
}

// NewDefaultSyntheticResolver returns a resolver with the stock anchor date
// (2025-01-27) and expected list length (39)
func NewDefaultSyntheticResolver() *SyntheticResolver {
	return NewSyntheticResolver(time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC), 39)
}

// Resolve computes an estimated date by walking back one day per link from
// the anchor. The arithmetic only adjusts the day-of-month and clamps it at 1
// rather than rolling into the previous month; this is a known-crude estimate
// kept intentionally, not a scheduling calculation.
func (r *SyntheticResolver) Resolve(ctx context.Context, rec domain.LinkRecord) domain.Metadata {
	daysBack := r.totalExpected - rec.Index
	day := r.anchor.Day() - daysBack
	if day < 1 {
		day = 1
	}
	estimated := time.Date(r.anchor.Year(), r.anchor.Month(), day, 0, 0, 0, 0, r.anchor.Location())

	return domain.Metadata{
		VideoID:    rec.VideoID,
		URL:        rec.URL,
		Index:      rec.Index,
		Title:      fmt.Sprintf("%s #%02d", DefaultTitle, rec.Index),
		RecordDate: estimated.Format("2006-01-02"),
		Status:     domain.StatusAvailable,
	}
}
