package sitechat

import "context"

// Frontier manages the crawl queue with single-owner deduplication.
// A URL is claimed at enqueue time, so each discovered URL is fetched at
// most once regardless of how many pages link to it.
type Frontier interface {
	// Push claims a URL and adds it to the queue.
	// Returns false if the URL has already been claimed.
	Push(url string) bool

	// Pop returns the next URL in discovery order.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of queued URLs.
	Len() int

	// Seen returns true if the URL has been claimed.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
