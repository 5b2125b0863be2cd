package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitechat.PageStore = (*PageService)(nil)

// PageService implements sitechat.PageStore using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// AppendPage persists a crawled page at the end of the corpus. The store
// assigns the position so appends from separate runs extend the sequence
// instead of restarting it.
func (s *PageService) AppendPage(ctx context.Context, page *sitechat.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.FetchedAt = time.Now().UTC()
	page.ContentHash = hashContent(page.Content)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO pages (id, page_name, url, content, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM pages), ?)
		RETURNING position
	`, page.ID, page.PageName, page.URL, page.Content, page.ContentHash,
		page.FetchedAt.Format(time.RFC3339)).Scan(&page.Position)
}

// Pages returns all stored pages in append order.
func (s *PageService) Pages(ctx context.Context) ([]*sitechat.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_name, url, content, content_hash, position, fetched_at
		FROM pages
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitechat.PageRecord
	for rows.Next() {
		var page sitechat.PageRecord
		var fetchedAt string

		if err := rows.Scan(&page.ID, &page.PageName, &page.URL, &page.Content,
			&page.ContentHash, &page.Position, &fetchedAt); err != nil {
			return nil, err
		}

		var parseErr error
		page.FetchedAt, parseErr = time.Parse(time.RFC3339, fetchedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", parseErr)
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// FindPageByURL retrieves the most recently fetched page for a URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*sitechat.PageRecord, error) {
	var page sitechat.PageRecord
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, page_name, url, content, content_hash, position, fetched_at
		FROM pages
		WHERE url = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`, url).Scan(&page.ID, &page.PageName, &page.URL, &page.Content,
		&page.ContentHash, &page.Position, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	page.FetchedAt, parseErr = time.Parse(time.RFC3339, fetchedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", parseErr)
	}

	return &page, nil
}

// DeletePages removes all stored pages.
func (s *PageService) DeletePages(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pages")
	return err
}
