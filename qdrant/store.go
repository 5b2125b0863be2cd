// Package qdrant implements chunk retrieval backed by a Qdrant vector
// database, as an alternative to the in-process flat index for corpora too
// large to scan exhaustively.
package qdrant

import (
	"context"
	"fmt"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
	client "github.com/qdrant/go-client/qdrant"
)

// DefaultCollection is the collection chunks are stored in.
const DefaultCollection = "site_chunks"

// Compile-time interface verification.
var _ sitechat.Searcher = (*Store)(nil)

// Store implements sitechat.Searcher over a Qdrant collection. Chunk texts
// and corpus positions travel in point payloads so search results carry the
// same fields as the in-process index.
type Store struct {
	client     *client.Client
	embedder   sitechat.Embedder
	collection string
}

// Config holds the Qdrant connection settings.
type Config struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// NewStore connects to Qdrant and returns a Store over the given collection.
func NewStore(cfg Config, embedder sitechat.Embedder, collection string) (*Store, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	c, err := client.NewClient(&client.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("can't create qdrant client: %w", err)
	}
	return &Store{client: c, embedder: embedder, collection: collection}, nil
}

// ensureCollection creates the collection if it does not exist yet. Cosine
// distance matches the normalized mode of the in-process index.
func (s *Store) ensureCollection(ctx context.Context, dim uint64) error {
	if info, err := s.client.GetCollectionInfo(ctx, s.collection); err == nil && info != nil {
		return nil
	}
	err := s.client.CreateCollection(ctx, &client.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: client.NewVectorsConfig(&client.VectorParams{
			Size:     dim,
			Distance: client.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("can't create collection %s: %w", s.collection, err)
	}
	return nil
}

// ReplaceChunks embeds chunks and replaces the collection contents with
// them.
func (s *Store) ReplaceChunks(ctx context.Context, chunks []sitechat.Chunk) error {
	if len(chunks) == 0 {
		return sitechat.Errorf(sitechat.EINVALID, "at least one chunk required")
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return sitechat.Errorf(sitechat.EINTERNAL, "embedding model returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	if err := s.ensureCollection(ctx, uint64(len(vectors[0]))); err != nil {
		return err
	}

	// Drop previous contents so positions stay in lockstep with the corpus.
	if err := s.clear(ctx); err != nil {
		return err
	}

	points := make([]*client.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &client.PointStruct{
			Id:      client.NewID(uuid.New().String()),
			Vectors: client.NewVectors(vectors[i]...),
			Payload: client.NewValueMap(map[string]any{
				"position": chunk.Position,
				"content":  chunk.Content,
			}),
		}
	}

	if _, err := s.client.Upsert(ctx, &client.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("can't upsert chunks: %w", err)
	}
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	_, err := s.client.Delete(ctx, &client.DeletePoints{
		CollectionName: s.collection,
		Points: &client.PointsSelector{
			PointsSelectorOneOf: &client.PointsSelector_Filter{
				Filter: &client.Filter{},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("can't clear collection %s: %w", s.collection, err)
	}
	return nil
}

// Search embeds the query and returns the top k chunks by similarity.
func (s *Store) Search(ctx context.Context, query string, k int) ([]sitechat.SearchResult, error) {
	if k <= 0 {
		return nil, sitechat.Errorf(sitechat.EINVALID, "k must be positive")
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	limit := uint64(k)
	points, err := s.client.Query(ctx, &client.QueryPoints{
		CollectionName: s.collection,
		Query:          client.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    client.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	results := make([]sitechat.SearchResult, len(points))
	for i, point := range points {
		results[i] = sitechat.SearchResult{
			Score:    point.Score,
			Position: int(point.Payload["position"].GetIntegerValue()),
			Text:     point.Payload["content"].GetStringValue(),
		}
	}
	return results, nil
}
