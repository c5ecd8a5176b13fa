package extractservice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recording-transcripts/pkg/links"
	"recording-transcripts/pkg/metadata"
	"recording-transcripts/pkg/pipeline"
	"recording-transcripts/pkg/report"
	"recording-transcripts/pkg/transcribe"
)

// failingSource always returns an error
type failingSource struct{}

func (s *failingSource) Fetch(ref string) ([]string, error) {
	return nil, errors.New("source unavailable")
}

// stubLocator reports no audio for every share page
type stubLocator struct{}

func (l *stubLocator) Locate(ctx context.Context, shareURL string) (string, error) {
	return "", nil
}

func newTestService(t *testing.T, sources []links.Source, maxEntries int) *Service {
	t.Helper()

	p := pipeline.New(pipeline.Config{
		Resolver:    metadata.NewDefaultSyntheticResolver(),
		Transcriber: transcribe.NewPlaceholderTranscriber(),
		Locator:     &stubLocator{},
		WorkDir:     t.TempDir(),
	})

	return NewService(Config{
		Sources:    sources,
		Pipeline:   p,
		Run:        report.SyntheticRun,
		MaxEntries: maxEntries,
	})
}

func TestService_Extract_SourceFallback(t *testing.T) {
	sources := []links.Source{
		&failingSource{},
		links.NewStaticSource([]string{
			"https://zoom.us/rec/share/abc.tok",
			"https://zoom.us/rec/share/def.tok",
		}),
	}

	service := newTestService(t, sources, 0)

	set, err := service.Extract(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if set.Meta.TotalVideos != 2 {
		t.Errorf("Expected 2 results, got %d", set.Meta.TotalVideos)
	}
	if set.Transcriptions[0].Metadata.VideoID != "abc" {
		t.Errorf("Expected video ID abc, got %s", set.Transcriptions[0].Metadata.VideoID)
	}
}

func TestService_Extract_AllSourcesFail(t *testing.T) {
	service := newTestService(t, []links.Source{&failingSource{}, &failingSource{}}, 0)

	_, err := service.Extract(context.Background(), "ignored")
	if err == nil {
		t.Fatal("Expected error when every source fails")
	}
	if !strings.Contains(err.Error(), "all link sources failed") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestService_Extract_MaxEntriesCap(t *testing.T) {
	source := links.NewStaticSource([]string{
		"https://zoom.us/rec/share/a.tok",
		"https://zoom.us/rec/share/b.tok",
		"https://zoom.us/rec/share/c.tok",
	})

	service := newTestService(t, []links.Source{source}, 2)

	set, err := service.Extract(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(set.Transcriptions) != 2 {
		t.Fatalf("Expected cap of 2 results, got %d", len(set.Transcriptions))
	}
	if set.Transcriptions[1].Metadata.VideoID != "b" {
		t.Errorf("Expected second result to be video b, got %s", set.Transcriptions[1].Metadata.VideoID)
	}
}

func TestService_ExtractToFiles_WritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	textPath := filepath.Join(dir, "out.txt")

	source := links.NewStaticSource([]string{"https://zoom.us/rec/share/abc.tok"})
	service := newTestService(t, []links.Source{source}, 0)

	set, err := service.ExtractToFiles(context.Background(), "ignored", jsonPath, textPath)
	if err != nil {
		t.Fatalf("ExtractToFiles failed: %v", err)
	}
	if set.Meta.TotalVideos != 1 {
		t.Errorf("Expected 1 result, got %d", set.Meta.TotalVideos)
	}

	parsed, err := report.ReadJSON(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON report: %v", err)
	}
	if len(parsed.Transcriptions) != 1 {
		t.Errorf("Expected 1 result in JSON report, got %d", len(parsed.Transcriptions))
	}

	text, err := os.ReadFile(textPath)
	if err != nil {
		t.Fatalf("Failed to read text report: %v", err)
	}
	if !strings.Contains(string(text), "神威日報技術ミーティング #01") {
		t.Error("Text report missing the recording section header")
	}
}
