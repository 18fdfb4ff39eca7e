// Package repository stores posts as markdown files with front matter and serves them back as
// metadata and rendered HTML.
package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Storage is the raw byte store behind a ContentStore. Each post is one document addressed by
// its slug. Get returns an error matching fs.ErrNotExist when the slug is absent.
type Storage interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, slug string) ([]byte, error)
	Put(ctx context.Context, slug string, data []byte) error
}

var repoLogger zerolog.Logger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

// ValidSlug rejects slugs that could escape a flat directory or key prefix.
func ValidSlug(slug string) bool {
	if slug == "" || strings.HasPrefix(slug, ".") {
		return false
	}
	return !strings.ContainsAny(slug, "/\\\x00") && !strings.Contains(slug, "..")
}
