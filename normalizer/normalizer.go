package normalizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Kind identifies the input variant of a submission.
type Kind string

const (
	KindText  Kind = "text"
	KindLink  Kind = "link"
	KindVoice Kind = "voice"
)

// Submission carries exactly one input: raw text, an article URL, or an
// audio URL, selected by Kind.
type Submission struct {
	Kind    Kind
	Payload string
}

// ErrValidation marks a submission that is malformed before any network
// call is made. The HTTP layer maps it to a client error.
var ErrValidation = errors.New("invalid submission")

// ErrFetch marks a non-success response while downloading the remote
// link or audio resource.
var ErrFetch = errors.New("fetch failed")

// Normalizer converts a submission into plain text suitable for the
// summarization prompt.
type Normalizer struct {
	client      *http.Client
	transcriber Transcriber
	logger      *slog.Logger
}

func New(client *http.Client, transcriber Transcriber, logger *slog.Logger) *Normalizer {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{client: client, transcriber: transcriber, logger: logger}
}

// Normalize produces the plain-text form of the submission. Link and voice
// variants perform at most two outbound calls (download plus transcription);
// nothing is cached.
func (n *Normalizer) Normalize(ctx context.Context, sub Submission) (string, error) {
	switch sub.Kind {
	case KindText:
		text := strings.TrimSpace(sub.Payload)
		if text == "" {
			return "", fmt.Errorf("%w: text content is required", ErrValidation)
		}
		return text, nil
	case KindLink:
		return n.normalizeLink(ctx, strings.TrimSpace(sub.Payload))
	case KindVoice:
		return n.normalizeVoice(ctx, strings.TrimSpace(sub.Payload))
	default:
		return "", fmt.Errorf("%w: unknown input type %q", ErrValidation, sub.Kind)
	}
}

func (n *Normalizer) normalizeLink(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("%w: link URL is required", ErrValidation)
	}

	body, err := n.fetch(ctx, link)
	if err != nil {
		return "", err
	}

	text := ExtractArticleText(string(body))
	if text == "" {
		return "", fmt.Errorf("no readable content found at %s", link)
	}
	n.logger.Info("extracted article text", "url", link, "chars", len(text))
	return text, nil
}

func (n *Normalizer) normalizeVoice(ctx context.Context, audioURL string) (string, error) {
	if audioURL == "" {
		return "", fmt.Errorf("%w: voice URL is required", ErrValidation)
	}
	if n.transcriber == nil {
		return "", errors.New("no transcriber configured")
	}

	audio, err := n.fetch(ctx, audioURL)
	if err != nil {
		return "", err
	}

	transcript, err := n.transcriber.Transcribe(ctx, audio, audioFilename(audioURL))
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", errors.New("transcription returned empty text")
	}
	n.logger.Info("transcribed audio", "url", audioURL, "chars", len(transcript))
	return transcript, nil
}

// fetch downloads the resource, following redirects with the client's
// default policy.
func (n *Normalizer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrValidation, url, err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, url, err)
	}
	return body, nil
}

// audioFilename derives a filename (and thereby the container hint the
// transcription API uses) from the URL path, defaulting to mp3.
func audioFilename(audioURL string) string {
	trimmed := strings.SplitN(audioURL, "?", 2)[0]
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed == "" || !strings.Contains(trimmed, ".") {
		return "audio.mp3"
	}
	return trimmed
}
