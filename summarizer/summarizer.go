package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Summarizer turns normalized plain text into a Summary through a single
// chat completion. No retries; a bad response surfaces to the caller.
type Summarizer struct {
	llm    LLMClient
	logger *slog.Logger
}

func New(llm LLMClient, logger *slog.Logger) (*Summarizer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{llm: llm, logger: logger}, nil
}

func (s *Summarizer) Summarize(ctx context.Context, content string) (Summary, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Summary{}, errors.New("content is empty")
	}

	raw, err := s.llm.Complete(ctx, BuildSummaryPrompt(content))
	if err != nil {
		return Summary{}, fmt.Errorf("summary generation failed: %w", err)
	}

	summary, err := PostProcess(raw)
	if err != nil {
		return Summary{}, err
	}
	s.logger.Info("summary generated", "title", summary.Title, "html_chars", len(summary.HTML))
	return summary, nil
}
