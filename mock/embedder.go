package mock

import (
	"context"

	"github.com/fwojciec/sitechat"
)

var _ sitechat.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of sitechat.Embedder.
type Embedder struct {
	EmbedTextFn  func(ctx context.Context, text string) ([]float32, error)
	EmbedTextsFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedTextFn(ctx, text)
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if e.EmbedTextsFn != nil {
		return e.EmbedTextsFn(ctx, texts)
	}
	// Fall back to per-text embedding, which is what most tests need.
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.EmbedTextFn(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}
