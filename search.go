package sitechat

import "context"

// SearchResult is a single retrieval hit: the similarity score, the chunk's
// corpus position, and the chunk text at that position.
//
// Score is a plain inner product of embedding vectors. When the index was
// built with normalization enabled this equals cosine similarity; otherwise
// it is magnitude-sensitive.
type SearchResult struct {
	Score    float32
	Position int
	Text     string
}

// Searcher retrieves the chunks most similar to a query.
type Searcher interface {
	// Search embeds the query and returns up to k results in descending
	// similarity order. Fewer than k results are returned when the corpus
	// is smaller than k.
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)
}

// ContextTexts extracts the chunk texts from results, in rank order.
func ContextTexts(results []SearchResult) []string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return texts
}
