package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/db"
	"github.com/debemdeboas/inkwell/internal/util/compression"
)

// NewStorage builds the backend named by cfg.Driver. Backends holding a connection implement
// io.Closer.
func NewStorage(ctx context.Context, cfg config.StorageConfig, secrets config.Secrets) (Storage, error) {
	switch cfg.Driver {
	case "fs", "":
		return NewFSStorage(cfg.FS.Root), nil

	case "memory":
		return NewMemoryStorage(), nil

	case "sqlite":
		compressor, err := compression.New(cfg.SQLite.Compression)
		if err != nil {
			return nil, err
		}
		database := db.NewSQLite(cfg.SQLite.Path)
		if err := database.InitDb(ctx); err != nil {
			return nil, err
		}
		return NewDBStorage(database, compressor), nil

	case "s3":
		client, err := NewS3Client(ctx, cfg.S3, secrets.S3AccessKeyID, secrets.S3SecretAccessKey)
		if err != nil {
			return nil, err
		}
		return NewS3Storage(client, cfg.S3.Bucket, cfg.S3.Prefix), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ParseStorageURI turns "driver:location" into a storage config on top of base. It is used by
// the migration tool, e.g. fs:content or sqlite:blog.db or s3:bucket.
func ParseStorageURI(uri string, base config.StorageConfig) (config.StorageConfig, error) {
	driver, location, _ := strings.Cut(uri, ":")
	cfg := base
	cfg.Driver = driver

	switch driver {
	case "fs":
		if location != "" {
			cfg.FS.Root = location
		}
	case "sqlite":
		if location != "" {
			cfg.SQLite.Path = location
		}
	case "s3":
		if location != "" {
			cfg.S3.Bucket = location
		}
		if cfg.S3.Bucket == "" {
			return cfg, fmt.Errorf("s3 storage needs a bucket: %q", uri)
		}
	case "memory":
	default:
		return cfg, fmt.Errorf("unknown storage driver in %q", uri)
	}
	return cfg, nil
}
