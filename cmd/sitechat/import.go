package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/sitechat"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.Pages(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	docs := make([]string, 0, len(pages))
	for _, page := range pages {
		docs = append(docs, page.Content)
	}

	if c.PDFDir != "" {
		pdfDocs, err := c.extractPDFs(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
			return err
		}
		docs = append(docs, pdfDocs...)
	}

	if len(docs) == 0 {
		err := sitechat.Errorf(sitechat.EINVALID, "no pages to import; run 'sitechat crawl' first")
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	splitter := sitechat.Splitter{Parts: c.Parts, Overlap: c.Overlap}
	texts := splitter.SplitAll(docs)
	chunks := make([]sitechat.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = sitechat.Chunk{Position: i, Content: text}
	}

	if err := deps.Chunks.ReplaceChunks(deps.Ctx, chunks); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	if deps.Store != nil {
		err = deps.Store.ReplaceChunks(deps.Ctx, chunks)
	} else {
		err = deps.Index.Build(deps.Ctx, chunks)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d documents\n", len(chunks), len(docs))
	if deps.Tokens != nil {
		if total, err := countTokens(deps, texts); err == nil {
			fmt.Fprintf(deps.Stdout, "Corpus size: %d tokens\n", total)
		}
	}
	return nil
}

// countTokens sums token counts across all chunk texts.
func countTokens(deps *Dependencies, texts []string) (int, error) {
	total := 0
	for _, text := range texts {
		n, err := deps.Tokens.CountTokens(deps.Ctx, text)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// extractPDFs returns one document per page of each PDF in the configured
// directory, in file name order.
func (c *ImportCmd) extractPDFs(deps *Dependencies) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(c.PDFDir, "*.pdf"))
	if err != nil {
		return nil, err
	}

	var docs []string
	for _, path := range paths {
		pages, err := deps.PDFs.ExtractPages(deps.Ctx, path)
		if err != nil {
			// A bad PDF should not abort the import.
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", path, err)
			continue
		}
		docs = append(docs, pages...)
		fmt.Fprintf(deps.Stdout, "  extracted %d pages from %s\n", len(pages), filepath.Base(path))
	}
	return docs, nil
}
