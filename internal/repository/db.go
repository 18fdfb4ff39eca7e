package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/debemdeboas/inkwell/internal/db"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/debemdeboas/inkwell/internal/util/compression"
)

// DBStorage keeps compressed post files in the posts table.
type DBStorage struct {
	db         db.Db
	compressor compression.Compressor
}

func NewDBStorage(database db.Db, compressor compression.Compressor) *DBStorage {
	if compressor == nil {
		compressor = compression.ZstdCompressor{}
	}
	return &DBStorage{
		db:         database,
		compressor: compressor,
	}
}

func (s *DBStorage) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM posts ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func (s *DBStorage) Get(ctx context.Context, slug string) ([]byte, error) {
	var compressed []byte
	err := s.db.QueryRowContext(ctx, `SELECT content FROM posts WHERE slug = ?`, slug).Scan(&compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fs.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("error reading post: %w", err)
	}

	content, err := s.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing content: %w", err)
	}
	return content, nil
}

func (s *DBStorage) Put(ctx context.Context, slug string, data []byte) error {
	if !ValidSlug(slug) {
		return ErrInvalidSlug
	}

	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("error compressing content: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO posts (slug, content, md_content_hash, modified_at) VALUES (?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    content = excluded.content,
    md_content_hash = excluded.md_content_hash,
    modified_at = excluded.modified_at`,
		slug, compressed, util.ContentHash(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving post: %w", err)
	}

	repoLogger.Debug().Str("slug", slug).Int("compressed_bytes", len(compressed)).Msg("Post stored")
	return nil
}

func (s *DBStorage) Close() error {
	return s.db.Close()
}
