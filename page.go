package sitechat

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// PageRecord is a crawled page that passed the minimum-word filter.
// Records are append-only: they are never mutated or deleted once written.
type PageRecord struct {
	ID          string    `json:"-"`
	PageName    string    `json:"page_name"`
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	ContentHash string    `json:"-"`
	Position    int       `json:"-"`
	FetchedAt   time.Time `json:"-"`
}

// Validate returns an error if the record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.PageName == "" {
		return Errorf(EINVALID, "page name required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageWriter appends page records to storage.
type PageWriter interface {
	// AppendPage appends a record. Records are written in crawl order and
	// the store assigns Position as the next index in its sequence.
	AppendPage(ctx context.Context, page *PageRecord) error
}

// PageStore persists page records and reads them back in append order.
type PageStore interface {
	PageWriter

	// Pages returns all stored records in append order.
	Pages(ctx context.Context) ([]*PageRecord, error)
}

// PageNameFromURL derives a page name from a URL: the last non-empty path
// segment with any ".html" suffix removed. The bare domain root yields
// "index".
func PageNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "index"
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		return strings.TrimSuffix(segments[i], ".html")
	}
	return "index"
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
