package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of sitechat.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, k int) ([]sitechat.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, k int) ([]sitechat.SearchResult, error) {
	return s.SearchFn(ctx, query, k)
}
