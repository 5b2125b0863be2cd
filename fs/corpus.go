// Package fs provides file-based corpus storage for crawled pages.
package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/sitechat"
)

// delimiter separates page blocks in the flat text log.
const delimiter = "========================================"

// Ensure FlatLog implements sitechat.PageWriter at compile time.
var _ sitechat.PageWriter = (*FlatLog)(nil)

// FlatLog appends page records to a human-readable text file. The log is
// write-only: it exists for inspection, not for reading back into the
// pipeline.
type FlatLog struct {
	path string
}

// NewFlatLog creates a FlatLog writing to path.
func NewFlatLog(path string) *FlatLog {
	return &FlatLog{path: path}
}

// AppendPage appends one page block to the log.
func (l *FlatLog) AppendPage(ctx context.Context, page *sitechat.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening corpus log: %w", err)
	}
	defer f.Close()

	block := fmt.Sprintf("Page Name: %s url: %s | Content:\n%s\n\n%s\n",
		page.PageName, page.URL, page.Content, delimiter)
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("writing corpus log: %w", err)
	}
	return nil
}

// Ensure JSONLStore implements sitechat.PageStore at compile time.
var _ sitechat.PageStore = (*JSONLStore)(nil)

// JSONLStore persists page records as one JSON object per line. Appends are
// O(1): the file is never rewritten, so sequential writers grow the corpus
// incrementally and a crash loses at most the record being written.
type JSONLStore struct {
	path string
}

// NewJSONLStore creates a JSONLStore writing to path.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// AppendPage appends one record as a JSON line.
func (s *JSONLStore) AppendPage(ctx context.Context, page *sitechat.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encoding page record: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing corpus: %w", err)
	}
	return nil
}

// Pages reads all records in append order. A missing file is an empty
// corpus, not an error.
func (s *JSONLStore) Pages(ctx context.Context) ([]*sitechat.PageRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	var pages []*sitechat.PageRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for i := 0; scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var page sitechat.PageRecord
		if err := json.Unmarshal([]byte(line), &page); err != nil {
			return nil, fmt.Errorf("decoding corpus line %d: %w", i+1, err)
		}
		page.Position = len(pages)
		pages = append(pages, &page)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	return pages, nil
}
