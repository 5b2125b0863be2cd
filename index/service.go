package index

import (
	"context"
	"os"

	"github.com/fwojciec/sitechat"
)

// Compile-time interface verification.
var _ sitechat.Searcher = (*Service)(nil)

// Service pairs an embedding model with a Flat index to answer text queries.
// It owns the index lifecycle: build from a chunk corpus, persist to a fixed
// path, and reload on later runs.
type Service struct {
	embedder  sitechat.Embedder
	path      string
	normalize bool
	flat      *Flat
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithNormalize controls whether vectors are L2-normalized, making scores
// cosine similarities instead of raw inner products. Defaults to false.
func WithNormalize(normalize bool) ServiceOption {
	return func(s *Service) {
		s.normalize = normalize
	}
}

// NewService creates a Service persisting its index at path.
func NewService(embedder sitechat.Embedder, path string, opts ...ServiceOption) *Service {
	s := &Service{embedder: embedder, path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted index if one exists, otherwise builds one from
// chunks and persists it. When a persisted index is loaded and chunks are
// non-empty, the index corpus must match the supplied chunks; a mismatch
// means the index is stale and the caller should rebuild.
func (s *Service) Open(ctx context.Context, chunks []sitechat.Chunk) error {
	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		return s.Build(ctx, chunks)
	}

	flat, err := Load(s.path)
	if err != nil {
		return err
	}
	if len(chunks) > 0 {
		texts := chunkTexts(chunks)
		if fingerprintTexts(texts) != flat.Fingerprint() {
			return sitechat.Errorf(sitechat.ECONFLICT, "index at %s was built from a different corpus; rebuild the index", s.path)
		}
	}

	s.flat = flat
	return nil
}

// Build embeds chunks, constructs a fresh index and persists it, replacing
// any existing index file.
func (s *Service) Build(ctx context.Context, chunks []sitechat.Chunk) error {
	if len(chunks) == 0 {
		return sitechat.Errorf(sitechat.EINVALID, "cannot build an index from an empty corpus")
	}

	texts := chunkTexts(chunks)
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(texts) {
		return sitechat.Errorf(sitechat.EINTERNAL, "embedding model returned %d vectors for %d texts", len(vectors), len(texts))
	}

	flat, err := NewFlat(len(vectors[0]), s.normalize)
	if err != nil {
		return err
	}
	if err := flat.Add(vectors, texts); err != nil {
		return err
	}
	if err := flat.Save(s.path); err != nil {
		return err
	}

	s.flat = flat
	return nil
}

// Search embeds the query with the same model the index was built with and
// returns the top k chunks by similarity.
func (s *Service) Search(ctx context.Context, query string, k int) ([]sitechat.SearchResult, error) {
	if s.flat == nil {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "index is not loaded")
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.flat.Search(vector, k)
}

// Len returns the number of indexed chunks, or zero before Open/Build.
func (s *Service) Len() int {
	if s.flat == nil {
		return 0
	}
	return s.flat.Len()
}

func chunkTexts(chunks []sitechat.Chunk) []string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	return texts
}
