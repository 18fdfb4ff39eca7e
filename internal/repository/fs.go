package repository

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/debemdeboas/inkwell/internal/config"
)

// FSStorage keeps one <slug>.md file per post in a flat directory. The directory is created on
// demand.
type FSStorage struct {
	root string
}

func NewFSStorage(root string) *FSStorage {
	return &FSStorage{root: root}
}

func (s *FSStorage) Root() string {
	return s.root
}

func (s *FSStorage) ensureRoot() error {
	return os.MkdirAll(s.root, 0o755)
}

func (s *FSStorage) path(slug string) string {
	return filepath.Join(s.root, slug+config.PostFileExt)
}

func (s *FSStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureRoot(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, config.PostFileExt) {
			continue
		}
		slug := strings.TrimSuffix(name, config.PostFileExt)
		if !ValidSlug(slug) {
			continue
		}
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

func (s *FSStorage) Get(ctx context.Context, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidSlug(slug) {
		return nil, fs.ErrNotExist
	}
	if err := s.ensureRoot(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path(slug))
}

// Put writes to a temporary file next to the target and renames it into place, so readers see
// either the old or the new file.
func (s *FSStorage) Put(ctx context.Context, slug string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidSlug(slug) {
		return ErrInvalidSlug
	}
	if err := s.ensureRoot(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, "."+slug+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path(slug))
}
