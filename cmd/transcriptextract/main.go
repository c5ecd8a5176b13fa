package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"recording-transcripts/pkg/extractservice"
	"recording-transcripts/pkg/links"
	"recording-transcripts/pkg/metadata"
	"recording-transcripts/pkg/pipeline"
	"recording-transcripts/pkg/report"
	"recording-transcripts/pkg/transcribe"
)

func main() {
	var (
		linksRef = flag.String("links", "share_links.txt", "Share link source: a local file, an RSS feed URL, or a sitemap URL")
		mode     = flag.String("mode", "synthetic", "Pipeline variant: synthetic, scraped, or whisper")
		jsonOut  = flag.String("json", "", "JSON output path (default depends on mode)")
		textOut  = flag.String("text", "", "Text output path (default depends on mode)")
		delay    = flag.Duration("delay", 0, "Pause between links (default depends on mode)")
		max      = flag.Int("max", 0, "Max share links to process (<=0 means no limit)")
	)
	flag.Parse()

	// .env is optional; real environment variables win either way
	if err := godotenv.Load(); err == nil {
		logrus.Info("Loaded environment from .env")
	}

	ctx := context.Background()

	cfg := pipeline.Config{Delay: *delay}
	var run report.RunDescription
	jsonPath, textPath := *jsonOut, *textOut

	switch *mode {
	case "synthetic":
		cfg.Resolver = metadata.NewDefaultSyntheticResolver()
		cfg.Transcriber = transcribe.NewPlaceholderTranscriber()
		run = report.SyntheticRun
		if cfg.Delay == 0 {
			cfg.Delay = 100 * time.Millisecond
		}
		if jsonPath == "" {
			jsonPath = "video_transcriptions_rag.json"
		}
		if textPath == "" {
			textPath = "video_transcriptions_rag.txt"
		}

	case "scraped":
		cfg.Resolver = metadata.NewScrapedResolver()
		cfg.Transcriber = transcribe.NewPlaceholderTranscriber()
		cfg.Documents = transcribe.NewDocumentExtractor()
		run = report.ScrapedRun
		if cfg.Delay == 0 {
			cfg.Delay = 2 * time.Second
		}
		if jsonPath == "" {
			jsonPath = "real_transcriptions.json"
		}
		if textPath == "" {
			textPath = "real_transcriptions.txt"
		}

	case "whisper":
		cfg.Resolver = metadata.NewScrapedResolver()
		cfg.Transcriber = transcribe.NewWhisperTranscriber(transcribe.WhisperConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
		})
		run = report.WhisperRun
		if cfg.Delay == 0 {
			cfg.Delay = 2 * time.Second
		}
		if jsonPath == "" {
			jsonPath = "whisper_transcriptions.json"
		}
		if textPath == "" {
			textPath = "whisper_transcriptions.txt"
		}

	default:
		logrus.Fatalf("Unknown mode %q, expected synthetic, scraped, or whisper", *mode)
	}

	service := extractservice.NewService(extractservice.Config{
		Sources: []links.Source{
			links.NewFileSource(),
			links.NewRSSSource(),
			links.NewSitemapSource(),
		},
		Pipeline:   pipeline.New(cfg),
		Run:        run,
		MaxEntries: *max,
	})

	start := time.Now()
	logrus.Infof("Processing share links from %s (mode=%s, max=%d)", *linksRef, *mode, *max)

	set, err := service.ExtractToFiles(ctx, *linksRef, jsonPath, textPath)
	if err != nil {
		logrus.Fatalf("Extraction failed: %v", err)
	}

	logrus.Infof("Done. %d recordings processed in %s", set.Meta.TotalVideos, time.Since(start))
}
