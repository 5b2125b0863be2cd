package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/chat"
)

// Run executes the chat command: a read-eval-print loop that shows the full
// conversation transcript after each answer.
func (c *ChatCmd) Run(deps *Dependencies) error {
	if err := openIndex(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	session := chat.NewSession(deps.Searcher, deps.Completer,
		chat.WithContextK(c.K),
		chat.WithMaxAnswerTokens(c.MaxTokens),
		chat.WithMaxTurns(c.MaxTurns),
	)

	fmt.Fprintln(deps.Stdout, "Ask about the site (empty line to quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		transcript, err := session.Ask(deps.Ctx, question)
		if err != nil {
			// One failed turn should not end the conversation.
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout, transcript)
	}
	return scanner.Err()
}
