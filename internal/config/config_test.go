package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSetLogger(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	SetLogger(logger)
}

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.Site.Name != "Blog" {
			t.Errorf("Expected site name 'Blog', got %q", config.Site.Name)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("Expected host '0.0.0.0', got %q", config.Server.Host)
		}
		if config.Server.Port != "3000" {
			t.Errorf("Expected port '3000', got %q", config.Server.Port)
		}
		if config.Server.ReadTimeout != 15*time.Second {
			t.Errorf("Expected read timeout 15s, got %v", config.Server.ReadTimeout)
		}
		if config.Storage.Driver != "fs" {
			t.Errorf("Expected storage driver 'fs', got %q", config.Storage.Driver)
		}
		if config.Storage.FS.Root != "content" {
			t.Errorf("Expected content root 'content', got %q", config.Storage.FS.Root)
		}
		if config.Storage.SQLite.Compression != "zstd" {
			t.Errorf("Expected zstd compression, got %q", config.Storage.SQLite.Compression)
		}
		if config.Markdown.Engine != "goldmark" {
			t.Errorf("Expected goldmark engine, got %q", config.Markdown.Engine)
		}
		if config.Auth.TokenMode != "signed" {
			t.Errorf("Expected signed token mode, got %q", config.Auth.TokenMode)
		}
		if config.Auth.SecureCookies {
			t.Error("Expected secure cookies to be off by default")
		}
		if config.Auth.SessionTTL != 24*time.Hour {
			t.Errorf("Expected 24h session TTL, got %v", config.Auth.SessionTTL)
		}
		if config.Logging.Level != "info" {
			t.Errorf("Expected logging level 'info', got %q", config.Logging.Level)
		}
		if config.Server.CORSOrigins != nil {
			t.Errorf("Expected no CORS origins, got %v", config.Server.CORSOrigins)
		}
	})

	t.Run("Custom struct with various field types", func(t *testing.T) {
		type TestStruct struct {
			StringField   string        `default:"test-string"`
			BoolField     bool          `default:"true"`
			IntField      int           `default:"42"`
			Float64Field  float64       `default:"3.14"`
			SliceField    []string      `default:"a, b,c"`
			DurationField time.Duration `default:"90s"`
			NoDefault     string
		}

		s := &TestStruct{}
		applyDefaults(s)

		if s.StringField != "test-string" {
			t.Errorf("Expected 'test-string', got %q", s.StringField)
		}
		if !s.BoolField {
			t.Error("Expected BoolField to be true")
		}
		if s.IntField != 42 {
			t.Errorf("Expected 42, got %d", s.IntField)
		}
		if s.Float64Field != 3.14 {
			t.Errorf("Expected 3.14, got %f", s.Float64Field)
		}
		if !reflect.DeepEqual(s.SliceField, []string{"a", "b", "c"}) {
			t.Errorf("Expected [a b c], got %v", s.SliceField)
		}
		if s.DurationField != 90*time.Second {
			t.Errorf("Expected 90s, got %v", s.DurationField)
		}
		if s.NoDefault != "" {
			t.Errorf("Expected empty NoDefault, got %q", s.NoDefault)
		}
	})

	t.Run("Non-struct input is ignored", func(t *testing.T) {
		value := "unchanged"
		applyDefaults(&value)
		if value != "unchanged" {
			t.Errorf("Expected value to stay unchanged, got %q", value)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	SetLogger(zerolog.Nop())

	t.Run("Missing file uses defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !reflect.DeepEqual(cfg, Default()) {
			t.Errorf("Expected defaults, got %+v", cfg)
		}
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
site:
  name: "My Notes"
storage:
  driver: sqlite
  sqlite:
    path: /tmp/notes.db
markdown:
  engine: gomarkdown
auth:
  token_mode: opaque
  session_ttl: 2h
server:
  cors_origins:
    - https://example.com
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Site.Name != "My Notes" {
			t.Errorf("Expected site name override, got %q", cfg.Site.Name)
		}
		if cfg.Site.Description == "" {
			t.Error("Expected untouched fields to keep their defaults")
		}
		if cfg.Storage.Driver != "sqlite" || cfg.Storage.SQLite.Path != "/tmp/notes.db" {
			t.Errorf("Unexpected storage config: %+v", cfg.Storage)
		}
		if cfg.Storage.SQLite.Compression != "zstd" {
			t.Errorf("Expected default compression to survive, got %q", cfg.Storage.SQLite.Compression)
		}
		if cfg.Markdown.Engine != "gomarkdown" {
			t.Errorf("Expected gomarkdown engine, got %q", cfg.Markdown.Engine)
		}
		if cfg.Auth.TokenMode != "opaque" || cfg.Auth.SessionTTL != 2*time.Hour {
			t.Errorf("Unexpected auth config: %+v", cfg.Auth)
		}
		if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"https://example.com"}) {
			t.Errorf("Unexpected CORS origins: %v", cfg.Server.CORSOrigins)
		}
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("site: [unterminated"), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected parse error, got nil")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAdminPassword:     "hunter2",
		EnvJWTSecret:         "jwt-secret",
		EnvLogLevel:          "debug",
		EnvContentDir:        "/srv/posts",
		EnvPort:              "8080",
		EnvS3AccessKeyID:     "key-id",
		EnvS3SecretAccessKey: "key-secret",
	}

	cfg := Default()
	ApplyEnv(cfg, func(k string) string { return env[k] })

	if cfg.Secrets.AdminPassword != "hunter2" {
		t.Errorf("Expected admin password from env, got %q", cfg.Secrets.AdminPassword)
	}
	if cfg.Secrets.JWTSecret != "jwt-secret" {
		t.Errorf("Expected JWT secret from env, got %q", cfg.Secrets.JWTSecret)
	}
	if cfg.Secrets.S3AccessKeyID != "key-id" || cfg.Secrets.S3SecretAccessKey != "key-secret" {
		t.Errorf("Unexpected S3 secrets: %+v", cfg.Secrets)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level override, got %q", cfg.Logging.Level)
	}
	if cfg.Storage.FS.Root != "/srv/posts" {
		t.Errorf("Expected content dir override, got %q", cfg.Storage.FS.Root)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Expected addr 0.0.0.0:8080, got %q", cfg.Addr())
	}

	t.Run("Empty env keeps defaults", func(t *testing.T) {
		cfg := Default()
		ApplyEnv(cfg, func(string) string { return "" })
		if cfg.Storage.FS.Root != "content" {
			t.Errorf("Expected default content root, got %q", cfg.Storage.FS.Root)
		}
		if cfg.Secrets.AdminPassword != "" {
			t.Errorf("Expected no admin password, got %q", cfg.Secrets.AdminPassword)
		}
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "Defaults are valid", mutate: func(*Config) {}},
		{name: "Unknown storage driver", mutate: func(c *Config) { c.Storage.Driver = "postgres" }, wantErr: true},
		{name: "Unknown markdown engine", mutate: func(c *Config) { c.Markdown.Engine = "blackfriday" }, wantErr: true},
		{name: "Unknown token mode", mutate: func(c *Config) { c.Auth.TokenMode = "session" }, wantErr: true},
		{name: "Unknown compression", mutate: func(c *Config) { c.Storage.SQLite.Compression = "lz4" }, wantErr: true},
		{name: "Non numeric port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: true},
		{name: "S3 without bucket", mutate: func(c *Config) { c.Storage.Driver = "s3" }, wantErr: true},
		{name: "S3 with bucket", mutate: func(c *Config) {
			c.Storage.Driver = "s3"
			c.Storage.S3.Bucket = "blog"
		}},
		{name: "Zero session TTL", mutate: func(c *Config) { c.Auth.SessionTTL = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
