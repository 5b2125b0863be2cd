// Package chat orchestrates retrieval-augmented conversations over an
// indexed site corpus.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/sitechat"
)

const (
	// DefaultContextK is the number of retrieved chunks included with each
	// question.
	DefaultContextK = 3

	// DefaultMaxAnswerTokens bounds the length of each generated answer.
	DefaultMaxAnswerTokens = 200

	// DefaultMaxTurns bounds the conversation history window so memory
	// stays bounded for long sessions.
	DefaultMaxTurns = 50
)

// Session is a single running conversation. It owns the retrieval backend,
// the language model client and the accumulated history; shared state never
// leaks outside the session. Safe for concurrent use.
type Session struct {
	searcher  sitechat.Searcher
	completer sitechat.Completer

	contextK  int
	maxTokens int
	maxTurns  int

	mu      sync.Mutex
	history []sitechat.Turn
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithContextK sets how many chunks are retrieved per question.
func WithContextK(k int) SessionOption {
	return func(s *Session) {
		s.contextK = k
	}
}

// WithMaxAnswerTokens sets the per-answer token budget.
func WithMaxAnswerTokens(n int) SessionOption {
	return func(s *Session) {
		s.maxTokens = n
	}
}

// WithMaxTurns sets the history window; once the window is full the oldest
// turn is evicted for each new one. Zero or negative means unbounded.
func WithMaxTurns(n int) SessionOption {
	return func(s *Session) {
		s.maxTurns = n
	}
}

// NewSession creates a Session over the given retrieval and completion
// backends.
func NewSession(searcher sitechat.Searcher, completer sitechat.Completer, opts ...SessionOption) *Session {
	s := &Session{
		searcher:  searcher,
		completer: completer,
		contextK:  DefaultContextK,
		maxTokens: DefaultMaxAnswerTokens,
		maxTurns:  DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers a question using retrieved site content, records the exchange
// in the session history and returns the rendered history transcript.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "question required")
	}

	results, err := s.searcher.Search(ctx, question, s.contextK)
	if err != nil {
		return "", err
	}

	prompt := BuildPrompt(question, sitechat.ContextTexts(results))
	answer, err := s.completer.Complete(ctx, prompt, s.maxTokens)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, sitechat.Turn{Question: question, Answer: answer})
	if s.maxTurns > 0 && len(s.history) > s.maxTurns {
		s.history = s.history[len(s.history)-s.maxTurns:]
	}

	return renderHistory(s.history), nil
}

// History returns a copy of the recorded turns, oldest first.
func (s *Session) History() []sitechat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]sitechat.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Transcript renders the recorded history as a single display string.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return renderHistory(s.history)
}

// Reset discards the conversation history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
}

// BuildPrompt assembles the language-model prompt from the question and the
// retrieved context texts.
func BuildPrompt(question string, contexts []string) string {
	var sb strings.Builder
	sb.WriteString("\n\nSite content:\n")
	sb.WriteString("\n\n" + strings.Join(contexts, "\n") + "\n")
	return fmt.Sprintf("Based on your knowledge and the following detailed context, please provide a comprehensive answer:\n\nCONTEXT:\n%s\n\nQUESTION:\n%s", sb.String(), question)
}

func renderHistory(history []sitechat.Turn) string {
	var sb strings.Builder
	for _, turn := range history {
		sb.WriteString("\n Q: " + turn.Question)
		sb.WriteString("\n A: " + turn.Answer)
		sb.WriteString("\n ------------------------")
	}
	return sb.String()
}
