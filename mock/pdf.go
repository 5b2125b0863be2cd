package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.PDFExtractor = (*PDFExtractor)(nil)

// PDFExtractor is a mock implementation of sitechat.PDFExtractor.
type PDFExtractor struct {
	ExtractPagesFn func(ctx context.Context, path string) ([]string, error)
}

func (e *PDFExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	return e.ExtractPagesFn(ctx, path)
}
