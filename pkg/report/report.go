package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"recording-transcripts/pkg/domain"
)

// RunDescription identifies a pipeline variant in the output envelope
type RunDescription struct {
	Source      string
	Description string
	Version     string

	// API names the external transcription provider, empty when none was
	// used
	API string
}

// Variant descriptions matching the three pipeline configurations
var (
	SyntheticRun = RunDescription{
		Source:      "神威日報 Zoom録画文字起こしデータ",
		Description: "AI開発技術ミーティングの動画文字起こしデータ（RAG用）",
		Version:     "1.0",
	}

	ScrapedRun = RunDescription{
		Source:      "神威日報 Zoom録画リアルタイム文字起こし",
		Description: "実際の音声から口調まで含めた詳細な文字起こしデータ",
		Version:     "2.0",
	}

	WhisperRun = RunDescription{
		Source:      "神威日報 Zoom録画 Whisper API文字起こし",
		Description: "Whisper APIを使用した実際の音声から口調まで含めた詳細な文字起こしデータ",
		Version:     "2.0",
		API:         "OpenAI Whisper",
	}
)

// NewResultSet wraps the accumulated results with the summary envelope.
// TotalVideos always equals len(results) and the result order is preserved.
func NewResultSet(desc RunDescription, results []domain.TranscriptResult) *domain.ResultSet {
	return &domain.ResultSet{
		Meta: domain.RunInfo{
			Source:      desc.Source,
			TotalVideos: len(results),
			CreatedAt:   time.Now(),
			Description: desc.Description,
			Format:      "JSON",
			Version:     desc.Version,
			API:         desc.API,
		},
		Transcriptions: results,
	}
}

// WriteJSON serializes the result set to an indented JSON file. HTML escaping
// is disabled so Japanese text and URLs stay readable in the output; the
// whole document is built in memory and written once, overwriting any
// previous run.
func WriteJSON(path string, set *domain.ResultSet) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(set); err != nil {
		return fmt.Errorf("failed to encode result set: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

// ReadJSON parses a result set previously written by WriteJSON
func ReadJSON(path string) (*domain.ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	var set domain.ResultSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse result set: %w", err)
	}

	return &set, nil
}

// WriteText renders the result set as a flat text document: a header block
// followed by one section per result
func WriteText(path string, set *domain.ResultSet) error {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n", set.Meta.Source))
	buf.WriteString(fmt.Sprintf("生成日時: %s\n", set.Meta.CreatedAt.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("総動画数: %d\n", set.Meta.TotalVideos))
	if set.Meta.API != "" {
		buf.WriteString(fmt.Sprintf("API: %s\n", set.Meta.API))
	}
	buf.WriteString(strings.Repeat("=", 80) + "\n\n")

	for _, result := range set.Transcriptions {
		meta := result.Metadata
		buf.WriteString(fmt.Sprintf("## %s\n", meta.Title))
		buf.WriteString(fmt.Sprintf("日付: %s\n", meta.RecordDate))
		buf.WriteString(fmt.Sprintf("URL: %s\n", meta.URL))
		buf.WriteString(fmt.Sprintf("ステータス: %s\n", meta.Status))
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		buf.WriteString(result.Transcription)
		buf.WriteString("\n\n" + strings.Repeat("=", 80) + "\n\n")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	return nil
}
