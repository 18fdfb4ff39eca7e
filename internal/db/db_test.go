package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const failedToInitDB = "Failed to initialize database: %v"

func TestSetLogger(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	SetLogger(logger)
	SetLogger(zerolog.Nop())
}

func newTestDB(t *testing.T) *SQLite {
	t.Helper()

	db := NewSQLite(MemoryPath)
	if err := db.InitDb(context.Background()); err != nil {
		t.Fatalf(failedToInitDB, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewSQLite(t *testing.T) {
	db := NewSQLite("blog.db")
	if db.Get() != nil {
		t.Error("Expected connection to be nil before InitDb")
	}
	if err := db.Close(); err != nil {
		t.Errorf("Expected closing an unopened database to succeed, got %v", err)
	}
}

func TestSchema(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, "PRAGMA table_info(posts)")
	if err != nil {
		t.Fatalf("Failed to get posts table info: %v", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid, notNull, pk int
		var name, dataType string
		var defaultValue sql.NullString
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			t.Fatalf("Failed to scan column info: %v", err)
		}
		columns[name] = true
	}

	for _, col := range []string{"slug", "content", "md_content_hash", "modified_at"} {
		if !columns[col] {
			t.Errorf("Expected posts table to have column %s", col)
		}
	}
}

func TestQueryAndExec(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	res, err := db.ExecContext(ctx,
		`INSERT INTO posts (slug, content, md_content_hash, modified_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		"hello-world", []byte("# Hello"), "hash123")
	if err != nil {
		t.Fatalf("Failed to insert post: %v", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Errorf("Expected 1 row affected, got %d", n)
	}

	var content []byte
	var hash string
	err = db.QueryRowContext(ctx, `SELECT content, md_content_hash FROM posts WHERE slug = ?`, "hello-world").
		Scan(&content, &hash)
	if err != nil {
		t.Fatalf("Failed to query post: %v", err)
	}
	if string(content) != "# Hello" || hash != "hash123" {
		t.Errorf("Unexpected row: content=%q hash=%q", content, hash)
	}

	t.Run("Primary key is enforced", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			`INSERT INTO posts (slug, content, md_content_hash, modified_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
			"hello-world", []byte("dup"), "x")
		if err == nil || !strings.Contains(err.Error(), "UNIQUE") {
			t.Errorf("Expected UNIQUE constraint error, got %v", err)
		}
	})

	t.Run("Invalid SQL", func(t *testing.T) {
		if _, err := db.QueryContext(ctx, "INVALID SQL SYNTAX"); err == nil {
			t.Error("Expected error for invalid SQL")
		}
	})
}

func TestFileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")
	ctx := context.Background()

	first := NewSQLite(path)
	if err := first.InitDb(ctx); err != nil {
		t.Fatalf(failedToInitDB, err)
	}
	if _, err := first.ExecContext(ctx,
		`INSERT INTO posts (slug, content, md_content_hash, modified_at) VALUES ('kept', x'00', 'h', CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewSQLite(path)
	if err := second.InitDb(ctx); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer second.Close()

	var n int
	if err := second.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 persisted row, got %d", n)
	}
}

func TestDbInterface(t *testing.T) {
	var _ Db = (*SQLite)(nil)
}
