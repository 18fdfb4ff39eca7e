package repository

import (
	"context"
	"io/fs"
	"slices"
	"sync"
)

type MemoryStorage struct {
	mu    sync.RWMutex
	posts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{posts: make(map[string][]byte)}
}

func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slugs := make([]string, 0, len(s.posts))
	for slug := range s.posts {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	return slugs, nil
}

func (s *MemoryStorage) Get(ctx context.Context, slug string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.posts[slug]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return slices.Clone(data), nil
}

func (s *MemoryStorage) Put(ctx context.Context, slug string, data []byte) error {
	if !ValidSlug(slug) {
		return ErrInvalidSlug
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[slug] = slices.Clone(data)
	return nil
}
