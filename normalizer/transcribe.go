package normalizer

import (
	"bytes"
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Transcriber converts downloaded audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// WhisperTranscriber implements Transcriber with OpenAI's transcription API,
// hinted to Portuguese since the operator records in pt-BR. A missing API
// key is reported when a transcription is attempted, not at construction.
type WhisperTranscriber struct {
	apiKey  string
	baseURL string
}

const transcriptionLanguage = "pt"

func NewWhisperTranscriber(apiKey, baseURL string) *WhisperTranscriber {
	return &WhisperTranscriber{apiKey: apiKey, baseURL: baseURL}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if len(audio) == 0 {
		return "", errors.New("audio payload is empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(t.apiKey)}
	if t.baseURL != "" {
		opts = append(opts, option.WithBaseURL(t.baseURL))
	}

	client := openai.NewClient(opts...)
	resp, err := client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     openai.File(bytes.NewReader(audio), filename, audioMIME(filename)),
		Model:    openai.AudioModelWhisper1,
		Language: openai.String(transcriptionLanguage),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func audioMIME(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(filename, ".ogg"), strings.HasSuffix(filename, ".oga"):
		return "audio/ogg"
	case strings.HasSuffix(filename, ".m4a"), strings.HasSuffix(filename, ".mp4"):
		return "audio/mp4"
	case strings.HasSuffix(filename, ".webm"):
		return "audio/webm"
	default:
		return "audio/mpeg"
	}
}
