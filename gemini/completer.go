// Package gemini implements the embedding and completion capabilities using
// Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/sitechat"
	"google.golang.org/genai"
)

const (
	// DefaultChatModel is the Gemini model used for answer generation.
	DefaultChatModel = "gemini-2.5-flash"

	// DefaultEmbedModel is the Gemini model used for text embeddings.
	DefaultEmbedModel = "gemini-embedding-001"
)

// Ensure Completer implements sitechat.Completer at compile time.
var _ sitechat.Completer = (*Completer)(nil)

// Completer implements sitechat.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer using DefaultChatModel.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client, model: DefaultChatModel}
}

// Complete generates an answer for the prompt, capped at maxTokens output
// tokens.
func (c *Completer) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if prompt == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "prompt required")
	}
	if maxTokens <= 0 {
		return "", sitechat.Errorf(sitechat.EINVALID, "max tokens must be positive")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(maxTokens),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(maxTokens int) *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a website. Ground your answers in the site content provided with each question.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: int32(maxTokens),
	}
}
