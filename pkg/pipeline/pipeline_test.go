package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"recording-transcripts/pkg/domain"
	"recording-transcripts/pkg/links"
	"recording-transcripts/pkg/metadata"
)

// stubFetcher simulates a successful audio download by writing fixed bytes
type stubFetcher struct {
	failFor map[string]bool
}

func (f *stubFetcher) Download(ctx context.Context, audioURL, destPath string) error {
	if f.failFor[audioURL] {
		return fmt.Errorf("simulated download failure")
	}
	return os.WriteFile(destPath, []byte("audio bytes"), 0o644)
}

// recordingTranscriber returns a fixed transcript and remembers what it saw
type recordingTranscriber struct {
	calls      int
	lastPath   string
	sawFile    bool
	transcript string
}

func (t *recordingTranscriber) Transcribe(ctx context.Context, audioPath string) string {
	t.calls++
	t.lastPath = audioPath
	if _, err := os.Stat(audioPath); err == nil {
		t.sawFile = true
	}
	return t.transcript
}

// panickingResolver blows up for a chosen index to exercise driver recovery
type panickingResolver struct {
	inner    metadata.Resolver
	panicFor int
}

func (r *panickingResolver) Resolve(ctx context.Context, rec domain.LinkRecord) domain.Metadata {
	if rec.Index == r.panicFor {
		panic("resolver exploded")
	}
	return r.inner.Resolve(ctx, rec)
}

func TestPipeline_Run_EndToEnd(t *testing.T) {
	// Share page 1 carries a locatable audio URL, share page 2 does not
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/share/first", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><script>src="https://cdn.zoom.us/rec/first.mp3"</script></html>`))
	})
	mux.HandleFunc("/share/second", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no media on this page</body></html>`))
	})

	transcriber := &recordingTranscriber{transcript: "本日の議事録です。"}
	workDir := t.TempDir()

	p := New(Config{
		Resolver:    metadata.NewDefaultSyntheticResolver(),
		Transcriber: transcriber,
		Fetcher:     &stubFetcher{},
		WorkDir:     workDir,
	})

	records := links.Records([]string{
		server.URL + "/share/first.tok",
		server.URL + "/share/second.tok",
	})
	// Point the records at the real handler paths, keeping derived IDs
	records[0].URL = server.URL + "/share/first"
	records[1].URL = server.URL + "/share/second"

	results := p.Run(context.Background(), records)

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// Entry 1: audio located, downloaded, transcribed
	if results[0].Metadata.URL != records[0].URL {
		t.Errorf("Result 1 metadata URL mismatch: %s", results[0].Metadata.URL)
	}
	if results[0].AudioURL != "https://cdn.zoom.us/rec/first.mp3" {
		t.Errorf("Result 1 audio URL: %s", results[0].AudioURL)
	}
	if results[0].Transcription != "本日の議事録です。" {
		t.Errorf("Result 1 transcript: %q", results[0].Transcription)
	}
	if !transcriber.sawFile {
		t.Error("Transcriber should have seen the downloaded audio file")
	}
	if transcriber.lastPath != filepath.Join(workDir, "audio_01.mp3") {
		t.Errorf("Unexpected audio path handed to transcriber: %s", transcriber.lastPath)
	}

	// Entry 2: no audio URL, fixed failure string, no audio URL recorded
	if results[1].AudioURL != "" {
		t.Errorf("Result 2 should have no audio URL, got %s", results[1].AudioURL)
	}
	if results[1].Transcription != MsgAudioURLNotFound {
		t.Errorf("Result 2 transcript: %q", results[1].Transcription)
	}
	if transcriber.calls != 1 {
		t.Errorf("Expected exactly 1 transcriber call, got %d", transcriber.calls)
	}

	// The per-iteration audio file must be gone after the run
	if _, err := os.Stat(filepath.Join(workDir, "audio_01.mp3")); err == nil {
		t.Error("Expected temporary audio file to be deleted")
	}
}

func TestPipeline_Run_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>"https://cdn.zoom.us/rec/broken.mp3"</html>`))
	}))
	defer server.Close()

	transcriber := &recordingTranscriber{transcript: "unused"}
	p := New(Config{
		Resolver:    metadata.NewDefaultSyntheticResolver(),
		Transcriber: transcriber,
		Fetcher:     &stubFetcher{failFor: map[string]bool{"https://cdn.zoom.us/rec/broken.mp3": true}},
		WorkDir:     t.TempDir(),
	})

	results := p.Run(context.Background(), links.Records([]string{server.URL + "/share/x.tok"}))
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Transcription != MsgAudioDownloadFailed {
		t.Errorf("Expected download failure string, got %q", results[0].Transcription)
	}
	// The located URL is still recorded even though the download failed
	if results[0].AudioURL != "https://cdn.zoom.us/rec/broken.mp3" {
		t.Errorf("Expected audio URL to be recorded, got %q", results[0].AudioURL)
	}
	if transcriber.calls != 0 {
		t.Errorf("Transcriber must not run after a failed download, got %d calls", transcriber.calls)
	}
}

func TestPipeline_Run_RecoversFromPanic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing</body></html>"))
	}))
	defer server.Close()

	p := New(Config{
		Resolver: &panickingResolver{
			inner:    metadata.NewDefaultSyntheticResolver(),
			panicFor: 2,
		},
		Transcriber: &recordingTranscriber{transcript: "unused"},
		Fetcher:     &stubFetcher{},
		WorkDir:     t.TempDir(),
	})

	records := links.Records([]string{
		server.URL + "/a.tok",
		server.URL + "/b.tok",
		server.URL + "/c.tok",
	})

	results := p.Run(context.Background(), records)

	// Link 2 is skipped entirely; the batch continues in order
	if len(results) != 2 {
		t.Fatalf("Expected 2 results after one skipped link, got %d", len(results))
	}
	if results[0].Metadata.Index != 1 || results[1].Metadata.Index != 3 {
		t.Errorf("Expected results for indexes 1 and 3, got %d and %d",
			results[0].Metadata.Index, results[1].Metadata.Index)
	}
}
