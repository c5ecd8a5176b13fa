package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"recording-transcripts/pkg/links"
	"recording-transcripts/pkg/metadata"
)

func main() {
	// For now, hardcode the links file
	linksFile := "share_links.txt"

	if len(os.Args) > 1 {
		linksFile = os.Args[1]
	}

	source := links.NewFileSource()

	urls, err := source.Fetch(linksFile)
	if err != nil {
		log.Fatalf("Failed to read share links: %v", err)
	}

	records := links.Records(urls)
	resolver := metadata.NewDefaultSyntheticResolver()

	// Print first 10 records
	maxRecords := 10
	if len(records) < maxRecords {
		maxRecords = len(records)
	}

	fmt.Printf("Found %d share links. Showing first %d:\n\n", len(records), maxRecords)

	for i := 0; i < maxRecords; i++ {
		rec := records[i]
		meta := resolver.Resolve(context.Background(), rec)

		fmt.Printf("Recording %d:\n", rec.Index)
		fmt.Printf("  URL: %s\n", rec.URL)
		if rec.VideoID != "" {
			fmt.Printf("  Video ID: %s\n", rec.VideoID)
		}
		fmt.Printf("  Title: %s\n", meta.Title)
		fmt.Printf("  Date: %s\n", meta.RecordDate)
		fmt.Println()
	}
}
