package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/crawl"
	"github.com/fwojciec/sitechat/index"
	"github.com/fwojciec/sitechat/qdrant"
	"github.com/fwojciec/sitechat/sqlite"
)

// Retrieval backends.
const (
	backendFlat   = "flat"
	backendQdrant = "qdrant"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DataDir string

	DB     *sqlite.DB
	Pages  sitechat.PageStore
	Chunks *sqlite.ChunkService

	Sitemaps  sitechat.SitemapService
	Crawler   *crawl.Crawler
	PDFs      sitechat.PDFExtractor
	Index     *index.Service
	Store     *qdrant.Store
	Searcher  sitechat.Searcher
	Completer sitechat.Completer
	Tokens    sitechat.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl a website into the page corpus"`
	Import ImportCmd `cmd:"" help:"Split the corpus into chunks and build the search index"`
	Search SearchCmd `cmd:"" help:"Retrieve the chunks most similar to a query"`
	Ask    AskCmd    `cmd:"" help:"Ask a single question about the indexed site"`
	Chat   ChatCmd   `cmd:"" help:"Chat interactively about the indexed site"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL       string   `arg:"" help:"Seed URL, e.g. https://www.ua.es/"`
	MaxPages  int      `default:"10" help:"Stop after saving this many pages"`
	MinWords  int      `default:"300" help:"Minimum main-content word count for a page to be saved"`
	Selector  string   `default:"main" help:"CSS selector for the main-content container"`
	Extractor string   `default:"selector" enum:"selector,article,readability" help:"Content extraction strategy"`
	Render    bool     `help:"Fetch pages with a headless browser (for JavaScript-rendered sites)"`
	RPS       float64  `default:"1.0" help:"Per-domain request rate limit"`
	Sitemap   bool     `help:"Pre-seed the crawl frontier from the site's sitemap"`
	Include   []string `help:"Only seed sitemap URLs matching one of these regexps"`
	Exclude   []string `help:"Never seed sitemap URLs matching one of these regexps"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Parts     int     `default:"3" help:"Number of chunks each document is split into"`
	Overlap   float64 `default:"0.1" help:"Chunk overlap as a fraction of chunk length"`
	Normalize bool    `help:"L2-normalize vectors so scores are cosine similarities"`
	PDFDir    string  `name:"pdf-dir" help:"Also ingest PDF files from this directory"`
	Backend   string  `default:"flat" enum:"flat,qdrant" help:"Retrieval backend"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	K       int    `short:"k" default:"3" help:"Number of chunks to retrieve"`
	Backend string `default:"flat" enum:"flat,qdrant" help:"Retrieval backend"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question  string `arg:"" help:"Question to ask about the site"`
	K         int    `short:"k" default:"3" help:"Number of context chunks per question"`
	MaxTokens int    `default:"200" help:"Answer token budget"`
	Backend   string `default:"flat" enum:"flat,qdrant" help:"Retrieval backend"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	K         int    `short:"k" default:"3" help:"Number of context chunks per question"`
	MaxTokens int    `default:"200" help:"Answer token budget"`
	MaxTurns  int    `default:"50" help:"History window; older turns are evicted"`
	Backend   string `default:"flat" enum:"flat,qdrant" help:"Retrieval backend"`
}

// backend returns the retrieval backend selected for cmd.
func (c *CLI) backend(cmd string) string {
	switch cmd {
	case "import":
		return c.Import.Backend
	case "search":
		return c.Search.Backend
	case "ask":
		return c.Ask.Backend
	case "chat":
		return c.Chat.Backend
	default:
		return backendFlat
	}
}

// normalize reports whether the flat index should L2-normalize vectors.
// Only import builds an index; later commands read the mode from the blob.
func (c *CLI) normalize(cmd string) bool {
	return cmd == "import" && c.Import.Normalize
}
