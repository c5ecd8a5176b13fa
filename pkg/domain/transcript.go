package domain

import "time"

// Status reports whether share-page metadata could be resolved for a recording.
type Status string

const (
	// StatusAvailable means the share page was fetched and parsed.
	StatusAvailable Status = "available"

	// StatusError means resolution fell back to default values.
	StatusError Status = "error"
)

// LinkRecord is one entry of the input link list. Immutable once read.
type LinkRecord struct {
	// URL is the shareable recording URL as supplied by the link source.
	URL string `json:"url"`

	// Index is the 1-based position of the link in the input list.
	Index int `json:"index"`

	// VideoID is the identifier parsed from the last URL path segment
	// (the part before the first dot). Empty when the URL has no usable
	// path segment.
	VideoID string `json:"video_id"`
}

// Metadata describes one recording. Produced once per LinkRecord and never
// mutated afterwards.
type Metadata struct {
	VideoID string `json:"video_id,omitempty"`
	URL     string `json:"url"`
	Index   int    `json:"index"`

	// Title is the recording title, either scraped from the share page or
	// synthesized from the link index.
	Title string `json:"title"`

	// RecordDate is the recording date in YYYY-MM-DD form. For the
	// synthetic resolver this is an estimate, not ground truth.
	RecordDate string `json:"record_date"`

	Status Status `json:"status"`
}

// TranscriptResult is the per-link output of the pipeline. AudioURL is set
// after audio location, Transcription after the transcribe stage; the value
// is treated as immutable once the pipeline appends it.
type TranscriptResult struct {
	Metadata Metadata `json:"metadata"`

	// AudioURL is the audio asset URL found on the share page, empty when
	// none was located.
	AudioURL string `json:"audio_url,omitempty"`

	// Transcription always holds text: a real transcript, the canned
	// placeholder, or a fixed failure message. Downstream writers never
	// need to special-case an absent transcript.
	Transcription string `json:"transcription"`

	ExtractedAt time.Time `json:"extracted_at"`
}

// RunInfo is the summary envelope written alongside the results.
type RunInfo struct {
	Source      string    `json:"source"`
	TotalVideos int       `json:"total_videos"`
	CreatedAt   time.Time `json:"created_at"`
	Description string    `json:"description"`
	Format      string    `json:"format"`
	Version     string    `json:"version"`

	// API names the external transcription provider, when one was used.
	API string `json:"api,omitempty"`
}

// ResultSet is the final aggregated output of one full run.
// Invariant: Meta.TotalVideos == len(Transcriptions) and the order of
// Transcriptions matches the input link order.
type ResultSet struct {
	Meta           RunInfo            `json:"metadata"`
	Transcriptions []TranscriptResult `json:"transcriptions"`
}
