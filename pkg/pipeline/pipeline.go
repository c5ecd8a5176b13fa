package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"recording-transcripts/pkg/audio"
	"recording-transcripts/pkg/domain"
	"recording-transcripts/pkg/metadata"
	"recording-transcripts/pkg/transcribe"
)

const (
	// MsgAudioURLNotFound is written as the transcript when no audio asset
	// URL could be located on the share page
	MsgAudioURLNotFound = "音声URLの抽出に失敗しました"

	// MsgAudioDownloadFailed is written as the transcript when the audio
	// asset could not be downloaded
	MsgAudioDownloadFailed = "音声ダウンロードに失敗しました"
)

// AudioLocator finds the audio asset URL for a share page, returning the
// empty string when none can be located
type AudioLocator interface {
	Locate(ctx context.Context, shareURL string) (string, error)
}

// AudioFetcher streams an audio asset URL to a local file
type AudioFetcher interface {
	Download(ctx context.Context, audioURL, destPath string) error
}

// Config assembles a pipeline from its stage strategies
type Config struct {
	// Resolver derives per-recording metadata (synthetic or scraped)
	Resolver metadata.Resolver

	// Transcriber turns a downloaded audio file into transcript text
	Transcriber transcribe.Transcriber

	// Locator and Fetcher default to the HTML-scanning locator and the
	// streaming fetcher from pkg/audio
	Locator AudioLocator
	Fetcher AudioFetcher

	// Documents, when set, enables the transcript-document fast path that
	// skips the audio stages for share pages linking a ready transcript
	Documents *transcribe.DocumentExtractor

	// Delay is the fixed pause between links, a courtesy to the share-link
	// host's rate limits
	Delay time.Duration

	// WorkDir holds the per-iteration temporary audio files; defaults to
	// the OS temp dir
	WorkDir string
}

// Pipeline processes share links strictly in order, one at a time. There is
// no coordination between iterations beyond the append-only result slice, and
// at most one temporary audio file exists at any moment.
type Pipeline struct {
	resolver    metadata.Resolver
	transcriber transcribe.Transcriber
	documents   *transcribe.DocumentExtractor
	locator     AudioLocator
	fetcher     AudioFetcher
	delay       time.Duration
	workDir     string
}

// New creates a pipeline from the given config
func New(cfg Config) *Pipeline {
	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}

	locator := cfg.Locator
	if locator == nil {
		locator = audio.NewLocator()
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = audio.NewFetcher()
	}

	return &Pipeline{
		resolver:    cfg.Resolver,
		transcriber: cfg.Transcriber,
		documents:   cfg.Documents,
		locator:     locator,
		fetcher:     fetcher,
		delay:       cfg.Delay,
		workDir:     workDir,
	}
}

// Run processes every link in order and returns one TranscriptResult per
// link, preserving input order. A failure in one link never aborts the batch:
// expected failures degrade to fixed transcript strings, and anything
// unexpected is recovered, logged with the link index, and the link skipped.
func (p *Pipeline) Run(ctx context.Context, records []domain.LinkRecord) []domain.TranscriptResult {
	results := make([]domain.TranscriptResult, 0, len(records))

	for i, rec := range records {
		logrus.Infof("pipeline: processing video #%02d: %s", rec.Index, rec.URL)

		result, err := p.processLink(ctx, rec)
		if err != nil {
			logrus.Errorf("pipeline: skipping video #%02d: %v", rec.Index, err)
		} else {
			results = append(results, result)
		}

		if p.delay > 0 && i < len(records)-1 {
			time.Sleep(p.delay)
		}
	}

	logrus.Infof("pipeline: processed %d of %d videos", len(results), len(records))
	return results
}

// processLink runs the per-link stage sequence. The returned error is
// non-nil only for unexpected failures (panics); everything anticipated is
// folded into the result.
func (p *Pipeline) processLink(ctx context.Context, rec domain.LinkRecord) (result domain.TranscriptResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	meta := p.resolver.Resolve(ctx, rec)
	result = domain.TranscriptResult{
		Metadata:    meta,
		ExtractedAt: time.Now(),
	}

	// Fast path: a transcript document linked directly from the share page
	// makes the audio stages unnecessary
	if p.documents != nil {
		if text, docErr := p.documents.FromSharePage(ctx, rec.URL); docErr == nil {
			logrus.Infof("pipeline: video #%02d has a linked transcript document", rec.Index)
			result.Transcription = text
			return result, nil
		}
	}

	audioURL, locErr := p.locator.Locate(ctx, rec.URL)
	if locErr != nil {
		logrus.Warnf("pipeline: audio URL extraction failed for #%02d: %v", rec.Index, locErr)
	}
	if audioURL == "" {
		result.Transcription = MsgAudioURLNotFound
		return result, nil
	}
	result.AudioURL = audioURL

	audioPath := filepath.Join(p.workDir, fmt.Sprintf("audio_%02d.mp3", rec.Index))
	if dlErr := p.fetcher.Download(ctx, audioURL, audioPath); dlErr != nil {
		logrus.Warnf("pipeline: audio download failed for #%02d: %v", rec.Index, dlErr)
		result.Transcription = MsgAudioDownloadFailed
		return result, nil
	}

	// The audio file is scoped to this iteration; remove it whatever the
	// transcription outcome so disk usage stays bounded across long lists
	defer os.Remove(audioPath)

	result.Transcription = p.transcriber.Transcribe(ctx, audioPath)
	return result, nil
}
