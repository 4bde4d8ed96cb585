package summarizer

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

// maxTitleLength is what we ask the model to respect; PostProcess enforces
// it again because models overshoot.
const maxTitleLength = 70

// BuildSummaryPrompt builds the instruction for turning normalized text
// into a {title, html} post in Brazilian Portuguese.
func BuildSummaryPrompt(content string) Prompt {
	var sb strings.Builder
	sb.WriteString("Você é um redator profissional de conteúdo educacional sobre finanças.\n")
	sb.WriteString("Responda SOMENTE com um JSON válido contendo exatamente as chaves \"title\" e \"html\".\n")
	sb.WriteString("Regras:\n")
	sb.WriteString(fmt.Sprintf("- \"title\": título em português do Brasil com no máximo %d caracteres.\n", maxTitleLength))
	sb.WriteString("- \"html\": fragmento HTML (sem <html> ou <body>) com o resumo do conteúdo.\n")
	sb.WriteString("- O corpo deve incluir uma lista com 3 a 5 insights práticos (<ul><li>...</li></ul>).\n")
	sb.WriteString("- Tom profissional e educativo; não invente fatos fora do conteúdo.\n")
	sb.WriteString("- Não inclua explicações fora do JSON.\n")

	user := fmt.Sprintf("Conteúdo original:\n%s\n\nGere o JSON conforme as regras.", content)

	return Prompt{System: sb.String(), User: user}
}
