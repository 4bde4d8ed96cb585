package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractArticleTextPlainPassthrough(t *testing.T) {
	got := ExtractArticleText("  texto   simples\nsem marcação  ")
	assert.Equal(t, "texto simples sem marcação", got)
}

func TestExtractArticleTextEmpty(t *testing.T) {
	assert.Empty(t, ExtractArticleText("   "))
}

func TestExtractArticleTextDropsBoilerplate(t *testing.T) {
	page := `<html><body>
		<nav>Início Sobre Contato</nav>
		<script>trackVisit()</script>
		<article>
			<p>A reserva de emergência deve cobrir de seis a doze meses de despesas fixas,
			aplicada em ativos de liquidez diária e baixo risco.</p>
			<p>Somente depois de montada a reserva faz sentido alocar em ativos mais voláteis,
			como ações e fundos imobiliários.</p>
		</article>
		<footer>Todos os direitos reservados</footer>
	</body></html>`

	got := ExtractArticleText(page)
	assert.Contains(t, got, "reserva de emergência")
	assert.NotContains(t, got, "trackVisit")
	assert.NotContains(t, got, "Início Sobre Contato")
	assert.NotContains(t, got, "direitos reservados")
}

func TestExtractArticleTextBodyFallback(t *testing.T) {
	// Too little structure for readability; the visible body text is used.
	page := `<html><body><div>Nota curta sobre o fechamento do mercado.</div></body></html>`

	got := ExtractArticleText(page)
	assert.Contains(t, got, "fechamento do mercado")
}
