package sitechat

// ExtractResult holds the text and links pulled from an HTML page.
type ExtractResult struct {
	// Text is the plain text of the page's main-content container with
	// script and style markup removed. Empty when the container is absent.
	Text string

	// Links are the absolute URLs of hyperlinks found anywhere on the
	// page, resolved against the page URL.
	Links []string
}

// Extractor pulls main-content text and hyperlinks from HTML pages.
type Extractor interface {
	// Extract processes raw HTML. The baseURL is used to resolve relative
	// links. A page without the main-content container yields empty Text,
	// not an error.
	Extract(html string, baseURL string) (*ExtractResult, error)
}
