package main_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/fwojciec/sitechat"
	main "github.com/fwojciec/sitechat/cmd/sitechat"
	"github.com/fwojciec/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEmptyFile(path string) error {
	return os.WriteFile(path, nil, 0o644)
}

// newAskDeps leaves Index nil so the command uses the injected Searcher
// directly, the same path the qdrant backend takes.
func newAskDeps(t *testing.T) *main.Dependencies {
	t.Helper()
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Searcher: &mock.Searcher{
			SearchFn: func(context.Context, string, int) ([]sitechat.SearchResult, error) {
				return []sitechat.SearchResult{{Score: 0.9, Position: 0, Text: "context chunk"}}, nil
			},
		},
		Completer: &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, _ int) (string, error) {
				assert.Contains(t, prompt, "context chunk")
				return "the campus is in San Vicente", nil
			},
		},
	}
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the answer", func(t *testing.T) {
		t.Parallel()

		deps := newAskDeps(t)
		cmd := &main.AskCmd{Question: "where is the campus?", K: 3, MaxTokens: 200}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "the campus is in San Vicente")
	})

	t.Run("propagates completion failure", func(t *testing.T) {
		t.Parallel()

		deps := newAskDeps(t)
		deps.Completer = &mock.Completer{
			CompleteFn: func(context.Context, string, int) (string, error) {
				return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "model unavailable")
			},
		}
		cmd := &main.AskCmd{Question: "where is the campus?", K: 3, MaxTokens: 200}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	deps := newAskDeps(t)
	cmd := &main.SearchCmd{Query: "campus", K: 1}

	require.NoError(t, cmd.Run(deps))
	out := deps.Stdout.(*bytes.Buffer).String()
	assert.Contains(t, out, "0.9000")
	assert.Contains(t, out, "context chunk")
}
