package normalizer

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ExtractArticleText pulls the main readable article out of raw page HTML
// and returns it as plain text. Boilerplate (navigation, headers, scripts)
// is removed before readability runs; when readability finds nothing, the
// visible text of the page body is used instead.
func ExtractArticleText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// Already plain text, nothing to parse.
	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return normalizeWhitespace(stripTags(trimmed))
	}

	cleaned := trimmed
	if pruned := pruneBoilerplate(doc); pruned != "" {
		cleaned = pruned
	}

	article, err := readability.FromReader(strings.NewReader(cleaned), nil)
	if err == nil {
		var buf strings.Builder
		if err := article.RenderText(&buf); err == nil {
			if text := strings.TrimSpace(buf.String()); text != "" {
				return normalizeWhitespace(text)
			}
		}
	}

	// Fallback: full visible text of the body.
	if body := strings.TrimSpace(doc.Find("body").Text()); body != "" {
		return normalizeWhitespace(body)
	}
	return normalizeWhitespace(stripTags(trimmed))
}

// pruneBoilerplate drops elements that never carry article content so that
// readability scores only the real text.
func pruneBoilerplate(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, aside, iframe, form").Remove()
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	return html
}

func stripTags(raw string) string {
	return bluemonday.StrictPolicy().Sanitize(raw)
}

func normalizeWhitespace(s string) string {
	paragraphs := strings.Split(s, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if compact := strings.Join(strings.Fields(p), " "); compact != "" {
			out = append(out, compact)
		}
	}
	return strings.Join(out, "\n\n")
}
