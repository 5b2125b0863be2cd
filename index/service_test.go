package index_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/index"
	"github.com/fwojciec/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder maps known texts to fixed 3-dimensional vectors so tests can
// reason about exact scores.
func axisEmbedder(t *testing.T) *mock.Embedder {
	t.Helper()
	vectors := map[string][]float32{
		"admissions":      {1, 0, 0},
		"research":        {0, 1, 0},
		"sports":          {0, 0, 1},
		"how do I apply?": {0.9, 0.1, 0},
	}
	return &mock.Embedder{
		EmbedTextFn: func(_ context.Context, text string) ([]float32, error) {
			v, ok := vectors[text]
			if !ok {
				return []float32{0, 0, 0}, nil
			}
			return v, nil
		},
	}
}

func testChunks() []sitechat.Chunk {
	return []sitechat.Chunk{
		{Position: 0, Content: "admissions"},
		{Position: 1, Content: "research"},
		{Position: 2, Content: "sports"},
	}
}

func TestService_Open(t *testing.T) {
	t.Parallel()

	t.Run("builds and persists when no index file exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		svc := index.NewService(axisEmbedder(t), path)

		require.NoError(t, svc.Open(context.Background(), testChunks()))
		assert.Equal(t, 3, svc.Len())
		assert.FileExists(t, path)
	})

	t.Run("loads existing index without re-embedding", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		ctx := context.Background()

		first := index.NewService(axisEmbedder(t), path)
		require.NoError(t, first.Open(ctx, testChunks()))

		// The second service's embedder fails on corpus embedding, so a
		// successful Open proves the index was loaded from disk.
		embedder := axisEmbedder(t)
		embedder.EmbedTextsFn = func(context.Context, []string) ([][]float32, error) {
			return nil, sitechat.Errorf(sitechat.EINTERNAL, "should not be called")
		}
		second := index.NewService(embedder, path)
		require.NoError(t, second.Open(ctx, testChunks()))
		assert.Equal(t, 3, second.Len())
	})

	t.Run("rejects a persisted index built from a different corpus", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		ctx := context.Background()

		first := index.NewService(axisEmbedder(t), path)
		require.NoError(t, first.Open(ctx, testChunks()))

		changed := testChunks()
		changed[1].Content = "rankings"

		second := index.NewService(axisEmbedder(t), path)
		err := second.Open(ctx, changed)
		require.Error(t, err)
		assert.Equal(t, sitechat.ECONFLICT, sitechat.ErrorCode(err))
	})

	t.Run("rejects building from an empty corpus", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		svc := index.NewService(axisEmbedder(t), path)

		err := svc.Open(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns top-k chunks for a query", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.bin")
		svc := index.NewService(axisEmbedder(t), path)
		ctx := context.Background()
		require.NoError(t, svc.Open(ctx, testChunks()))

		results, err := svc.Search(ctx, "how do I apply?", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "admissions", results[0].Text)
		assert.Equal(t, 0, results[0].Position)
		assert.Equal(t, "research", results[1].Text)
	})

	t.Run("building twice from the same corpus is deterministic", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()

		search := func(path string) []sitechat.SearchResult {
			svc := index.NewService(axisEmbedder(t), path)
			require.NoError(t, svc.Build(ctx, testChunks()))
			results, err := svc.Search(ctx, "how do I apply?", 3)
			require.NoError(t, err)
			return results
		}

		dir := t.TempDir()
		a := search(filepath.Join(dir, "a.bin"))
		b := search(filepath.Join(dir, "b.bin"))
		assert.Equal(t, a, b)
	})

	t.Run("fails before the index is opened", func(t *testing.T) {
		t.Parallel()

		svc := index.NewService(axisEmbedder(t), filepath.Join(t.TempDir(), "index.bin"))
		_, err := svc.Search(context.Background(), "admissions", 1)
		require.Error(t, err)
	})
}
