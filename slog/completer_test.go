package slog_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitechat/mock"
	scslog "github.com/fwojciec/sitechat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCompleter_Complete(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	inner := &mock.Completer{
		CompleteFn: func(context.Context, string, int) (string, error) {
			return "answer", nil
		},
	}

	completer := scslog.NewLoggingCompleter(inner, logger)
	answer, err := completer.Complete(context.Background(), "prompt", 200)

	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
	output := buf.String()
	assert.Contains(t, output, "completion")
	assert.Contains(t, output, "max_tokens=200")
	assert.Contains(t, output, "duration=")
}
