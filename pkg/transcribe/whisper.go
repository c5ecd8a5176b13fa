package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/sirupsen/logrus"
)

const (
	defaultWhisperModel = "whisper-1"

	// defaultLanguage hints the spoken language of the recordings
	defaultLanguage = "ja"

	// MsgMissingAPIKey is returned when no credential is configured. A
	// missing key is a configuration warning, not a fatal condition.
	MsgMissingAPIKey = "OpenAI APIキーが設定されていません"
)

// WhisperConfig configures the external speech-to-text transcriber. The
// credential is always passed in explicitly; reading the environment is the
// CLI's job, never this package's.
type WhisperConfig struct {
	// APIKey authenticates against the transcription service. When empty
	// the transcriber degrades to MsgMissingAPIKey without any network
	// traffic.
	APIKey string

	// Model overrides the default whisper-1 model
	Model string

	// Language overrides the default spoken-language hint ("ja")
	Language string

	// BaseURL overrides the service endpoint (used by tests)
	BaseURL string
}

// WhisperTranscriber uploads audio files to the OpenAI transcription API and
// returns the recognized text
type WhisperTranscriber struct {
	apiKey   string
	model    string
	language string
	client   openai.Client
}

// NewWhisperTranscriber creates a transcriber from the given config
func NewWhisperTranscriber(cfg WhisperConfig) *WhisperTranscriber {
	requestOpts := make([]option.RequestOption, 0, 2)
	if cfg.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(cfg.APIKey))
	}

	model := cfg.Model
	if model == "" {
		model = defaultWhisperModel
	}
	language := cfg.Language
	if language == "" {
		language = defaultLanguage
	}

	return &WhisperTranscriber{
		apiKey:   cfg.APIKey,
		model:    model,
		language: language,
		client:   openai.NewClient(requestOpts...),
	}
}

// Transcribe uploads the audio file and returns the recognized text,
// requesting word-level timestamps and the configured language hint. Every
// failure path (missing credential, unreadable file, network or service
// error, empty response) comes back as an explanatory string.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) string {
	if t.apiKey == "" {
		logrus.Warn("transcribe: OPENAI_API_KEY is not configured, skipping API call")
		return MsgMissingAPIKey
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return fmt.Sprintf("Whisper APIエラー: %v", err)
	}
	defer file.Close()

	logrus.Infof("transcribe: uploading %s to the Whisper API", audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		Language:               param.NewOpt(t.language),
		TimestampGranularities: []string{"word"},
	}

	response, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		logrus.Warnf("transcribe: Whisper API call failed for %s: %v", audioPath, err)
		return fmt.Sprintf("Whisper APIエラー: %v", err)
	}

	text := strings.TrimSpace(response.Text)
	if text == "" {
		return "Whisper APIエラー: 文字起こし結果が空です"
	}

	return text
}
