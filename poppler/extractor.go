// Package poppler extracts text from PDF files by shelling out to the
// pdftotext tool from poppler-utils.
package poppler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fwojciec/sitechat"
)

// Compile-time interface verification.
var _ sitechat.PDFExtractor = (*Extractor)(nil)

// Extractor implements sitechat.PDFExtractor using pdftotext.
type Extractor struct{}

// NewExtractor creates an Extractor. It fails when pdftotext is not on PATH
// so a missing dependency surfaces at startup instead of mid-import.
func NewExtractor() (*Extractor, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext missing, install poppler-utils: %w", err)
	}
	return &Extractor{}, nil
}

// ExtractPages returns the plain text of each page of the PDF at path.
// pdftotext separates pages with form-feed characters; blank pages are
// dropped.
func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("can't extract text from %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	var pages []string
	for _, page := range strings.Split(stdout.String(), "\f") {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		pages = append(pages, page)
	}
	return pages, nil
}
