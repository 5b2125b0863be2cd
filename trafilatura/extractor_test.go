package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/htmltomarkdown"
	"github.com/fwojciec/sitechat/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Grados - UA</title></head>
<body>
<nav><a href="/">Home</a><a href="/estudios">Estudios</a></nav>
<article>
<h1>Degree Programmes</h1>
<p>The University of Alicante offers a wide range of undergraduate degree
programmes across its faculties, from engineering to humanities. Admission
information is published every spring.</p>
</article>
<footer><a href="/legal">Legal</a></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts the content region as markdown", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor(htmltomarkdown.NewConverter())
		result, err := ext.Extract(testPage, "https://web.ua.es/es/grados.html")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Degree Programmes")
		assert.Contains(t, result.Text, "undergraduate degree")
		assert.NotContains(t, result.Text, "Legal")
	})

	t.Run("falls back to plain text without a converter", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor(nil)
		result, err := ext.Extract(testPage, "https://web.ua.es/es/grados.html")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "undergraduate degree")
	})

	t.Run("collects links from the whole document", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor(nil)
		result, err := ext.Extract(testPage, "https://web.ua.es/es/grados.html")

		require.NoError(t, err)
		assert.Contains(t, result.Links, "https://web.ua.es/")
		assert.Contains(t, result.Links, "https://web.ua.es/estudios")
		assert.Contains(t, result.Links, "https://web.ua.es/legal")
	})

	t.Run("page without content yields empty text", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor(nil)
		result, err := ext.Extract("<html><body></body></html>", "https://web.ua.es/")

		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(result.Text))
	})
}

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*trafilatura.Extractor)(nil)
