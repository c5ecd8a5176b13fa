package extractservice

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"recording-transcripts/pkg/domain"
	"recording-transcripts/pkg/links"
	"recording-transcripts/pkg/pipeline"
	"recording-transcripts/pkg/report"
)

// Service runs a complete extraction batch: fetch share links, process them
// through the pipeline, and write both report formats
type Service struct {
	sources    []links.Source
	pipeline   *pipeline.Pipeline
	run        report.RunDescription
	maxEntries int
}

// Config holds configuration for the service
type Config struct {
	// Sources are tried in order; the first one that yields URLs wins
	Sources []links.Source

	// Pipeline is the assembled per-link processor
	Pipeline *pipeline.Pipeline

	// Run describes the pipeline variant in the output envelope
	Run report.RunDescription

	// MaxEntries caps the number of links processed, 0 means no cap
	MaxEntries int
}

// NewService creates a new extraction service
func NewService(cfg Config) *Service {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = []links.Source{links.NewFileSource()}
	}

	return &Service{
		sources:    sources,
		pipeline:   cfg.Pipeline,
		run:        cfg.Run,
		maxEntries: cfg.MaxEntries,
	}
}

// Extract fetches share links from ref, processes them, and returns the
// assembled result set. It fails only when no source can produce links; any
// per-link failure is absorbed by the pipeline.
func (s *Service) Extract(ctx context.Context, ref string) (*domain.ResultSet, error) {
	urls, err := s.fetchLinks(ref)
	if err != nil {
		return nil, err
	}

	if s.maxEntries > 0 && len(urls) > s.maxEntries {
		urls = urls[:s.maxEntries]
	}

	logrus.Infof("extract: processing %d share links", len(urls))

	results := s.pipeline.Run(ctx, links.Records(urls))

	return report.NewResultSet(s.run, results), nil
}

// ExtractToFiles runs Extract and writes the JSON and text reports. Either
// path may be empty to skip that format.
func (s *Service) ExtractToFiles(ctx context.Context, ref, jsonPath, textPath string) (*domain.ResultSet, error) {
	set, err := s.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}

	if jsonPath != "" {
		if err := report.WriteJSON(jsonPath, set); err != nil {
			return nil, err
		}
		logrus.Infof("extract: wrote %s", jsonPath)
	}

	if textPath != "" {
		if err := report.WriteText(textPath, set); err != nil {
			return nil, err
		}
		logrus.Infof("extract: wrote %s", textPath)
	}

	return set, nil
}

// fetchLinks tries each source in order and returns the first non-empty URL
// list
func (s *Service) fetchLinks(ref string) ([]string, error) {
	var lastErr error

	for _, source := range s.sources {
		urls, err := source.Fetch(ref)
		if err != nil {
			lastErr = err
			continue
		}
		if len(urls) == 0 {
			continue
		}
		return urls, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all link sources failed, last error: %w", lastErr)
	}
	return nil, fmt.Errorf("no share links found in %s", ref)
}
