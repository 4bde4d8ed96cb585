package summarizer

import (
	"context"
	"encoding/json"
)

// MockLLM is a local stand-in that never calls an external model. Useful
// for driving the pipeline end to end during development.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	out, err := json.Marshal(Summary{
		Title: "Resumo gerado localmente",
		HTML: "<p>Resumo de demonstração do conteúdo enviado.</p>" +
			"<ul><li>Insight um</li><li>Insight dois</li><li>Insight três</li></ul>",
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
