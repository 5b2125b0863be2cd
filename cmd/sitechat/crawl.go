package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/crawl"
	"github.com/fwojciec/sitechat/fs"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	// Every saved page lands in all three corpus stores: the database the
	// import step reads, plus the flat text and JSONL corpus files.
	deps.Crawler.Stores = []sitechat.PageWriter{
		deps.Pages,
		fs.NewFlatLog(filepath.Join(deps.DataDir, "corpus.txt")),
		fs.NewJSONLStore(filepath.Join(deps.DataDir, "corpus.jsonl")),
	}
	if !c.Sitemap {
		deps.Crawler.Sitemaps = nil
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  saved %s\n", event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressStopped:
			fmt.Fprintf(deps.Stdout, "  reached page limit (%d)\n", event.Saved)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%d skipped, %d failed)\n",
		result.Saved, result.Skipped, result.Failed)
	fmt.Fprintln(deps.Stdout, "Run 'sitechat import' to build the search index")
	return nil
}
