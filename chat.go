package sitechat

import "context"

// Turn is one question/answer exchange in a chat session.
type Turn struct {
	Question string
	Answer   string
}

// Completer generates text from a prompt using an external language model.
type Completer interface {
	// Complete returns a completion for the prompt, bounded by maxTokens.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
