package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/chat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if err := openIndex(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	session := chat.NewSession(deps.Searcher, deps.Completer,
		chat.WithContextK(c.K),
		chat.WithMaxAnswerTokens(c.MaxTokens),
	)

	if _, err := session.Ask(deps.Ctx, c.Question); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	history := session.History()
	fmt.Fprintln(deps.Stdout, history[len(history)-1].Answer)
	return nil
}
