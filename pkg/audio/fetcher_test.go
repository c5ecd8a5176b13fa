package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetcher_Download(t *testing.T) {
	payload := []byte("fake mp3 bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "audio_01.mp3")

	fetcher := NewFetcher()
	if err := fetcher.Download(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Downloaded content mismatch: %q", got)
	}
}

func TestFetcher_Download_Overwrites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "audio_02.mp3")
	if err := os.WriteFile(dest, []byte("old longer content"), 0o644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	fetcher := NewFetcher()
	if err := fetcher.Download(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Expected file to be overwritten, got %q", got)
	}
}

func TestFetcher_Download_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "audio_03.mp3")

	fetcher := NewFetcher()
	if err := fetcher.Download(context.Background(), server.URL, dest); err == nil {
		t.Error("Expected error for 404 response, got nil")
	}

	if _, err := os.Stat(dest); err == nil {
		t.Error("Expected no file to be created on HTTP error")
	}
}
