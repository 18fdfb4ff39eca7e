// Command migrate copies every post from one storage backend to another, byte for byte.
//
//	migrate --from fs:content --to sqlite:blog.db
//	migrate --from sqlite:blog.db --to s3:my-bucket
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/db"
	"github.com/debemdeboas/inkwell/internal/logger"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type result struct {
	Copied int
	Failed int
}

func main() {
	from := flag.String("from", "", "Source storage, e.g. fs:content, sqlite:blog.db, s3:bucket")
	to := flag.String("to", "", "Destination storage in the same form as --from")
	configPath := flag.String("config", config.DefaultConfigPath, "Config file providing storage defaults")
	flag.Parse()

	godotenv.Load()

	level := os.Getenv(config.EnvLogLevel)
	if level == "" {
		level = "info"
	}
	l := logger.New(level, "console")
	config.SetLogger(logger.Component(l, "config"))
	db.SetLogger(logger.Component(l, "db"))
	repository.SetLogger(logger.Component(l, "repository"))

	if *from == "" || *to == "" {
		l.Fatal().Msg("Both --from and --to flags are required")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to load config")
	}
	config.ApplyEnv(cfg, os.Getenv)

	ctx := context.Background()

	src, err := openStorage(ctx, *from, cfg)
	if err != nil {
		l.Fatal().Err(err).Str("from", *from).Msg("Failed to open source")
	}
	defer closeStorage(src)

	dst, err := openStorage(ctx, *to, cfg)
	if err != nil {
		l.Fatal().Err(err).Str("to", *to).Msg("Failed to open destination")
	}
	defer closeStorage(dst)

	res, err := migrate(ctx, src, dst, l)
	if err != nil {
		l.Fatal().Err(err).Msg("Migration aborted")
	}

	l.Info().Int("copied", res.Copied).Int("failed", res.Failed).Msg("Migration finished")
	if res.Failed > 0 {
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, uri string, cfg *config.Config) (repository.Storage, error) {
	storageCfg, err := repository.ParseStorageURI(uri, cfg.Storage)
	if err != nil {
		return nil, err
	}
	return repository.NewStorage(ctx, storageCfg, cfg.Secrets)
}

func closeStorage(s repository.Storage) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}

// migrate copies each post from src to dst. A post that fails to copy is logged and skipped;
// only a failure to list the source aborts the run.
func migrate(ctx context.Context, src, dst repository.Storage, l zerolog.Logger) (result, error) {
	var res result

	slugs, err := src.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list source posts: %w", err)
	}

	for _, slug := range slugs {
		data, err := src.Get(ctx, slug)
		if err != nil {
			l.Error().Err(err).Str("slug", slug).Msg("Error reading post")
			res.Failed++
			continue
		}

		if err := dst.Put(ctx, slug, data); err != nil {
			l.Error().Err(err).Str("slug", slug).Msg("Error writing post")
			res.Failed++
			continue
		}

		l.Info().Str("slug", slug).Int("bytes", len(data)).Msg("Successfully copied post")
		res.Copied++
	}

	return res, nil
}
