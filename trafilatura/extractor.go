// Package trafilatura extracts main content from HTML using content-density
// heuristics instead of a fixed CSS selector, for sites whose markup does not
// use a semantic main-content container.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/sitechat"
	scgoquery "github.com/fwojciec/sitechat/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to locate the main content region. The
// region's HTML is rendered through the converter, so a Markdown converter
// yields structure-preserving text. Link discovery still scans the whole
// document, since navigation links live outside the content region.
type Extractor struct {
	converter sitechat.Converter
}

// NewExtractor creates a new Extractor rendering content with converter.
func NewExtractor(converter sitechat.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// Extract returns the detected main content as converted text plus all
// hyperlinks in the document resolved against baseURL. A page without a
// detectable content region yields empty text, not an error.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*sitechat.ExtractResult, error) {
	links, err := scgoquery.ExtractLinks(rawHTML, baseURL)
	if err != nil {
		return nil, err
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		// No content region detected; the crawler's word filter drops the page.
		return &sitechat.ExtractResult{Links: links}, nil
	}

	text := result.ContentText
	if result.ContentNode != nil && e.converter != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		if converted, err := e.converter.Convert(contentHTML); err == nil {
			text = converted
		}
	}

	return &sitechat.ExtractResult{
		Text:  strings.TrimSpace(text),
		Links: links,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
