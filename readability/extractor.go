// Package readability extracts main content from HTML using Mozilla's
// readability heuristics.
package readability

import (
	"strings"

	"github.com/fwojciec/sitechat"
	scgoquery "github.com/fwojciec/sitechat/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article text plus all hyperlinks in the document
// resolved against baseURL.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*sitechat.ExtractResult, error) {
	links, err := scgoquery.ExtractLinks(rawHTML, baseURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return &sitechat.ExtractResult{Links: links}, nil
	}

	return &sitechat.ExtractResult{
		Text:  strings.TrimSpace(article.TextContent),
		Links: links,
	}, nil
}
