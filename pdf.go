package sitechat

import "context"

// PDFExtractor extracts plain text from PDF documents, one string per page.
type PDFExtractor interface {
	// ExtractPages returns the text of each page of the PDF at path, in
	// page order.
	ExtractPages(ctx context.Context, path string) ([]string, error)
}
