package main

import (
	"fmt"

	"github.com/fwojciec/sitechat"
)

// openIndex loads the persisted flat index, verifying it against the stored
// chunk corpus. A no-op for the qdrant backend, which holds its own state.
func openIndex(deps *Dependencies) error {
	if deps.Index == nil {
		return nil
	}
	chunks, err := deps.Chunks.Chunks(deps.Ctx)
	if err != nil {
		return err
	}
	if err := deps.Index.Open(deps.Ctx, chunks); err != nil {
		return fmt.Errorf("failed to open index (run 'sitechat import' first): %w", err)
	}
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if err := openIndex(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	results, err := deps.Searcher.Search(deps.Ctx, c.Query, c.K)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%.4f\t%d\t%s\n", r.Score, r.Position, r.Text)
	}
	return nil
}
