package summarizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// ErrInvalidSummary marks model output that is not the required JSON shape.
var ErrInvalidSummary = errors.New("model returned invalid summary")

// PostProcess validates raw model output and returns a typed Summary. The
// output shape of the external service is never trusted: anything that is
// not JSON with non-empty title and html is rejected. Two repairs are
// tolerated because models produce them routinely: a Markdown code fence
// around the JSON, and a Markdown body in the html key.
func PostProcess(raw string) (Summary, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return Summary{}, fmt.Errorf("%w: empty response", ErrInvalidSummary)
	}

	var summary Summary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}

	summary.Title = strings.TrimSpace(summary.Title)
	summary.HTML = strings.TrimSpace(summary.HTML)
	if summary.Title == "" {
		return Summary{}, fmt.Errorf("%w: missing title", ErrInvalidSummary)
	}
	if summary.HTML == "" {
		return Summary{}, fmt.Errorf("%w: missing html", ErrInvalidSummary)
	}

	if len([]rune(summary.Title)) > maxTitleLength {
		summary.Title = strings.TrimSpace(string([]rune(summary.Title)[:maxTitleLength]))
	}

	if looksLikeMarkdown(summary.HTML) {
		html, err := markdownToHTML(summary.HTML)
		if err != nil {
			return Summary{}, fmt.Errorf("%w: body is not renderable: %v", ErrInvalidSummary, err)
		}
		summary.HTML = html
	}

	summary.HTML = sanitizeFragment(summary.HTML)
	if summary.HTML == "" {
		return Summary{}, fmt.Errorf("%w: body empty after sanitization", ErrInvalidSummary)
	}
	return summary, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// looksLikeMarkdown reports whether the body carries no HTML tags but does
// carry Markdown markers.
func looksLikeMarkdown(body string) bool {
	if strings.Contains(body, "<") {
		return false
	}
	for _, marker := range []string{"# ", "- ", "* ", "**", "\n\n"} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

func markdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// sanitizeFragment keeps the fragment limited to user-generated-content
// tags before it is embedded or published.
func sanitizeFragment(html string) string {
	return strings.TrimSpace(bluemonday.UGCPolicy().Sanitize(html))
}
