package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitechat.PageStore.
type PageStore struct {
	AppendPageFn func(ctx context.Context, page *sitechat.PageRecord) error
	PagesFn      func(ctx context.Context) ([]*sitechat.PageRecord, error)
}

func (s *PageStore) AppendPage(ctx context.Context, page *sitechat.PageRecord) error {
	return s.AppendPageFn(ctx, page)
}

func (s *PageStore) Pages(ctx context.Context) ([]*sitechat.PageRecord, error) {
	return s.PagesFn(ctx)
}
