package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/crawl"
	"github.com/fwojciec/sitechat/gemini"
	"github.com/fwojciec/sitechat/goquery"
	"github.com/fwojciec/sitechat/htmltomarkdown"
	schttp "github.com/fwojciec/sitechat/http"
	"github.com/fwojciec/sitechat/index"
	"github.com/fwojciec/sitechat/poppler"
	"github.com/fwojciec/sitechat/qdrant"
	"github.com/fwojciec/sitechat/readability"
	"github.com/fwojciec/sitechat/rod"
	scslog "github.com/fwojciec/sitechat/slog"
	"github.com/fwojciec/sitechat/sqlite"
	"github.com/fwojciec/sitechat/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// Optional local overrides for API keys and data paths.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Data directory holding the database, corpus files and index blob.
	// Set before calling Run().
	DataDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{DataDir: defaultDataDir()}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitechat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitechat --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %q: %w", m.DataDir, err)
	}

	m.DB = sqlite.NewDB(filepath.Join(m.DataDir, "sitechat.db"))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITECHAT_DATA to use a different data directory\n")
		return fmt.Errorf("failed to open database in %q: %w", m.DataDir, err)
	}
	defer m.Close()

	deps.DataDir = m.DataDir
	deps.DB = m.DB
	deps.Pages = sqlite.NewPageService(m.DB)
	deps.Chunks = sqlite.NewChunkService(m.DB)
	deps.Sitemaps = scslog.NewLoggingSitemapService(schttp.NewSitemapService(nil), logger)

	if cmd == "crawl" {
		var inner sitechat.Fetcher = schttp.NewFetcher()
		if cli.Crawl.Render {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			inner = browser
		}
		fetcher := scslog.NewLoggingFetcher(inner, logger)
		defer fetcher.Close()

		var extractor sitechat.Extractor
		switch cli.Crawl.Extractor {
		case "article":
			extractor = trafilatura.NewExtractor(htmltomarkdown.NewConverter())
		case "readability":
			extractor = readability.NewExtractor()
		default:
			extractor = goquery.NewExtractor(goquery.WithContentSelector(cli.Crawl.Selector))
		}

		urlFilter, err := newURLFilter(cli.Crawl.Include, cli.Crawl.Exclude)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   extractor,
			Sitemaps:    deps.Sitemaps,
			RateLimiter: crawl.NewDomainLimiter(cli.Crawl.RPS),
			URLFilter:   urlFilter,
			MinWords:    cli.Crawl.MinWords,
			MaxPages:    cli.Crawl.MaxPages,
		}
	}

	if cmd == "import" && cli.Import.PDFDir != "" {
		extractor, err := poppler.NewExtractor()
		if err != nil {
			return err
		}
		deps.PDFs = extractor
	}

	// The remaining commands all need the embedding model; import and ask
	// additionally use it through the retrieval backend.
	if cmd == "import" || cmd == "search" || cmd == "ask" || cmd == "chat" {
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}
		embedder := gemini.NewEmbedder(client)

		if cmd == "import" {
			// Token counts are informational; a missing local tokenizer
			// model should not block the import.
			if tokens, err := gemini.NewTokenCounter(gemini.DefaultChatModel); err == nil {
				deps.Tokens = tokens
			}
		}

		switch cli.backend(cmd) {
		case backendQdrant:
			store, err := qdrant.NewStore(qdrantConfigFromEnv(), embedder, "")
			if err != nil {
				return err
			}
			deps.Store = store
			deps.Searcher = scslog.NewLoggingSearcher(store, logger)
		default:
			deps.Index = index.NewService(embedder, filepath.Join(m.DataDir, "index.bin"),
				index.WithNormalize(cli.normalize(cmd)))
			deps.Searcher = scslog.NewLoggingSearcher(deps.Index, logger)
		}

		if cmd == "ask" || cmd == "chat" {
			deps.Completer = scslog.NewLoggingCompleter(gemini.NewCompleter(client), logger)
		}
	}

	return kongCtx.Run(deps)
}

func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

// newURLFilter compiles --include/--exclude patterns into a sitemap URL
// filter. Both empty means no filtering.
func newURLFilter(include, exclude []string) (*sitechat.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &sitechat.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, sitechat.Errorf(sitechat.EINVALID, "invalid --include pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, sitechat.Errorf(sitechat.EINVALID, "invalid --exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

func qdrantConfigFromEnv() qdrant.Config {
	cfg := qdrant.Config{
		Host:   os.Getenv("QDRANT_HOST"),
		Port:   6334,
		APIKey: os.Getenv("QDRANT_API_KEY"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if port, err := strconv.Atoi(os.Getenv("QDRANT_PORT")); err == nil && port > 0 {
		cfg.Port = port
	}
	return cfg
}

func defaultDataDir() string {
	if path := os.Getenv("SITECHAT_DATA"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sitechat"
	}
	return filepath.Join(home, ".sitechat")
}
