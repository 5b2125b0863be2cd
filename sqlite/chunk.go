package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/google/uuid"
)

// ChunkService persists the split corpus that backs the embedding index.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// ReplaceChunks atomically replaces the stored corpus with the given chunks.
// The corpus is rebuilt as a whole whenever pages are re-split, so partial
// updates are never needed.
func (s *ChunkService) ReplaceChunks(ctx context.Context, chunks []sitechat.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, chunk := range chunks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, position, content, created_at)
			VALUES (?, ?, ?, ?)
		`, uuid.New().String(), chunk.Position, chunk.Content, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Chunks returns the stored corpus in position order.
func (s *ChunkService) Chunks(ctx context.Context) ([]sitechat.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, content
		FROM chunks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []sitechat.Chunk
	for rows.Next() {
		var chunk sitechat.Chunk
		if err := rows.Scan(&chunk.Position, &chunk.Content); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// CountChunks returns the number of stored chunks.
func (s *ChunkService) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}
