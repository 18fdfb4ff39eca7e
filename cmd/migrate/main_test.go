package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/rs/zerolog"
)

type brokenStorage struct {
	repository.Storage
	failGet string
}

func (b *brokenStorage) Get(ctx context.Context, slug string) ([]byte, error) {
	if slug == b.failGet {
		return nil, errors.New("disk on fire")
	}
	return b.Storage.Get(ctx, slug)
}

func seed(t *testing.T, s repository.Storage, posts map[string]string) {
	t.Helper()
	for slug, body := range posts {
		if err := s.Put(context.Background(), slug, []byte(body)); err != nil {
			t.Fatalf("Failed to seed %s: %v", slug, err)
		}
	}
}

func TestMigrateFSToSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	ctx := context.Background()

	src, err := openStorage(ctx, "fs:"+filepath.Join(dir, "content"), cfg)
	if err != nil {
		t.Fatalf("Failed to open source: %v", err)
	}
	dst, err := openStorage(ctx, "sqlite:"+filepath.Join(dir, "blog.db"), cfg)
	if err != nil {
		t.Fatalf("Failed to open destination: %v", err)
	}
	defer closeStorage(dst)

	posts := map[string]string{
		"hello":  "---\ntitle: Hello\n---\nbody\n",
		"second": "---\ntitle: 두 번째\ndate: \"2024-01-02\"\n---\n# Two\n",
	}
	seed(t, src, posts)

	res, err := migrate(ctx, src, dst, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Copied != 2 || res.Failed != 0 {
		t.Errorf("Expected 2 copied and 0 failed, got %+v", res)
	}

	for slug, body := range posts {
		got, err := dst.Get(ctx, slug)
		if err != nil {
			t.Fatalf("Expected %s in the destination: %v", slug, err)
		}
		if !bytes.Equal(got, []byte(body)) {
			t.Errorf("Expected %s to be copied byte for byte, got %q", slug, got)
		}
	}
}

func TestMigrateSkipsFailures(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemoryStorage()
	seed(t, mem, map[string]string{"a": "A", "b": "B", "c": "C"})

	src := &brokenStorage{Storage: mem, failGet: "b"}
	dst := repository.NewMemoryStorage()

	res, err := migrate(ctx, src, dst, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Copied != 2 || res.Failed != 1 {
		t.Errorf("Expected 2 copied and 1 failed, got %+v", res)
	}

	slugs, _ := dst.List(ctx)
	if len(slugs) != 2 {
		t.Errorf("Expected the readable posts to be copied, got %v", slugs)
	}
}

func TestOpenStorageRejectsBadURI(t *testing.T) {
	cfg := config.Default()
	for _, uri := range []string{"postgres:db", "s3:"} {
		if _, err := openStorage(context.Background(), uri, cfg); err == nil {
			t.Errorf("Expected an error for %q", uri)
		}
	}
}
