package sitechat

import "context"

// Embedder maps text to fixed-dimension float vectors using an external
// embedding model. All vectors returned by one Embedder have the same
// dimension.
type Embedder interface {
	// EmbedText embeds a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts embeds a batch of texts, preserving input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
