// Package crawl provides site crawling orchestration: a quality-gated,
// link-following fetch loop that persists page records for later indexing.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sitechat"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Default crawl policy values.
const (
	DefaultMinWords = 300
	DefaultMaxPages = 10
)

// Crawler walks pages under one domain, persisting pages that pass the
// minimum-word filter and following links only from pages that pass.
//
// URLs are processed sequentially. The frontier claims a URL at enqueue
// time, so each discovered URL is fetched at most once.
type Crawler struct {
	Fetcher     sitechat.Fetcher
	Extractor   sitechat.Extractor
	Stores      []sitechat.PageWriter
	Sitemaps    sitechat.SitemapService // optional frontier pre-seeding
	RateLimiter sitechat.DomainLimiter

	// URLFilter restricts which sitemap-discovered URLs seed the
	// frontier. Nil admits all of them.
	URLFilter *sitechat.URLFilter

	// MinWords is the minimum whitespace-separated word count a page's
	// main-content text needs to be saved. Defaults to DefaultMinWords.
	MinWords int

	// MaxPages bounds the number of saved pages. Reaching it is a
	// controlled stop, not an error. Defaults to DefaultMaxPages.
	MaxPages int

	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl.
type Result struct {
	Saved          int
	Skipped        int
	Failed         int
	StoppedAtLimit bool
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressSaved ProgressType = iota
	ProgressSkipped
	ProgressFailed
	ProgressStopped
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Saved int
	Error error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl fetches pages reachable from seedURL within its subdomain family.
// Page-level fetch and parse failures are reported via progress and skipped;
// they never abort the crawl. Store write failures are fatal.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, progress ProgressFunc) (*Result, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid seed URL: %v", err)
	}
	if seed.Host == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "seed URL %q has no host", seedURL)
	}

	minWords := c.MinWords
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seedURL)

	// Pre-seed the frontier from the site's sitemap when available.
	if c.Sitemaps != nil {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, seedURL, c.URLFilter)
		if err == nil {
			for _, u := range urls {
				if sameSite(seed.Host, u) {
					frontier.Push(u)
				}
			}
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var result Result
	for {
		pageURL, ok := frontier.Pop()
		if !ok {
			break // frontier exhausted
		}

		if err := ctx.Err(); err != nil {
			return &result, err
		}

		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, hostOf(pageURL)); err != nil {
				return &result, err
			}
		}

		fetchFn := func(ctx context.Context, url string) (string, error) {
			return c.Fetcher.Fetch(ctx, url)
		}
		html, err := FetchWithRetryDelays(ctx, pageURL, fetchFn, nil, delays)
		if err != nil {
			result.Failed++
			emit(progress, ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			continue
		}

		extracted, err := c.Extractor.Extract(html, pageURL)
		if err != nil {
			result.Failed++
			emit(progress, ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			continue
		}

		// Quality gate: pages without enough main-content text are
		// dropped and their links are not followed.
		if extracted.Text == "" || sitechat.WordCount(extracted.Text) < minWords {
			result.Skipped++
			emit(progress, ProgressEvent{Type: ProgressSkipped, URL: pageURL})
			continue
		}

		page := &sitechat.PageRecord{
			PageName: sitechat.PageNameFromURL(pageURL),
			URL:      pageURL,
			Content:  extracted.Text,
		}
		for _, store := range c.Stores {
			if err := store.AppendPage(ctx, page); err != nil {
				return &result, fmt.Errorf("appending page %s: %w", pageURL, err)
			}
		}

		result.Saved++
		emit(progress, ProgressEvent{Type: ProgressSaved, URL: pageURL, Saved: result.Saved})

		if result.Saved >= maxPages {
			result.StoppedAtLimit = true
			emit(progress, ProgressEvent{Type: ProgressStopped, Saved: result.Saved})
			break
		}

		for _, link := range extracted.Links {
			if sameSite(seed.Host, link) {
				frontier.Push(link)
			}
		}
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, Saved: result.Saved})
	return &result, nil
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// sameSite reports whether rawURL belongs to the seed host's subdomain
// family: the exact host, the host without its "www." prefix, or any
// subdomain of that base.
func sameSite(seedHost, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	base := strings.TrimPrefix(seedHost, "www.")
	return u.Host == seedHost || u.Host == base || strings.HasSuffix(u.Host, "."+base)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
