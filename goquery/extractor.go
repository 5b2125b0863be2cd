// Package goquery provides HTML content and link extraction using
// CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitechat"
)

// DefaultContentSelector is the semantic container holding a page's main
// content. Pages without it yield empty text and are filtered out by the
// crawler's minimum-word check.
const DefaultContentSelector = "main"

// Ensure Extractor implements sitechat.Extractor at compile time.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor pulls main-content text and hyperlinks from HTML pages.
type Extractor struct {
	contentSelector string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithContentSelector overrides the CSS selector for the main-content
// container. Defaults to DefaultContentSelector.
func WithContentSelector(selector string) Option {
	return func(e *Extractor) {
		e.contentSelector = selector
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{contentSelector: DefaultContentSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses HTML, strips script and style markup, and returns the text
// of the main-content container plus all hyperlinks resolved against
// baseURL. A missing container yields empty text, not an error.
func (e *Extractor) Extract(html string, baseURL string) (*sitechat.ExtractResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	return &sitechat.ExtractResult{
		Text:  strings.TrimSpace(doc.Find(e.contentSelector).Text()),
		Links: collectLinks(doc, base),
	}, nil
}

// ExtractLinks returns all crawlable hyperlinks in html resolved against
// baseURL, deduplicated in document order. Shared by extractors that handle
// content with other libraries but still need link discovery.
func ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	return collectLinks(doc, base), nil
}

func collectLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links
}

// isNonHTTPLink returns true for links that cannot be crawled
// (javascript:, mailto:, tel:, fragments).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(href, "#")
}

// resolveURL resolves href against base and returns the absolute URL with
// any fragment stripped. Returns "" for unparseable or non-HTTP(S) URLs.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	resolved.Fragment = ""
	return resolved.String()
}
