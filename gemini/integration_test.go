//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/sitechat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newIntegrationClient(t *testing.T) (*genai.Client, context.Context) {
	t.Helper()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)
	return client, ctx
}

func TestCompleter_Integration_ReturnsAnswer(t *testing.T) {
	t.Parallel()

	client, ctx := newIntegrationClient(t)
	completer := gemini.NewCompleter(client)

	answer, err := completer.Complete(ctx,
		"CONTEXT:\nThe University of Alicante is located in San Vicente del Raspeig.\n\nQUESTION:\nWhere is the University of Alicante located?", 200)

	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Contains(t, answer, "San Vicente")
}

func TestEmbedder_Integration_ReturnsVectors(t *testing.T) {
	t.Parallel()

	client, ctx := newIntegrationClient(t)
	embedder := gemini.NewEmbedder(client)

	vectors, err := embedder.EmbedTexts(ctx, []string{"admissions", "research"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.NotEmpty(t, vectors[0])
	assert.Len(t, vectors[1], len(vectors[0]))
}
