package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/inkwell/internal/auth"
	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/db"
	"github.com/debemdeboas/inkwell/internal/logger"
	"github.com/debemdeboas/inkwell/internal/render"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/debemdeboas/inkwell/internal/server"
	"github.com/debemdeboas/inkwell/internal/sse"
	"github.com/debemdeboas/inkwell/internal/theme"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file loaded")
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	l := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	setLoggers(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Fatal().Stack().Err(err).Msg("Server stopped with an error")
	}
}

// loadConfig reads the YAML file named by CONFIG_PATH and overlays the environment.
func loadConfig(getenv func(string) string) (*config.Config, error) {
	path := getenv(config.EnvConfigPath)
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(logger.Component(l, "config"))
	db.SetLogger(logger.Component(l, "db"))
	repository.SetLogger(logger.Component(l, "repository"))
	render.SetLogger(logger.Component(l, "render"))
	theme.SetLogger(logger.Component(l, "theme"))
	auth.SetLogger(logger.Component(l, "auth"))
}

type app struct {
	handler http.Handler
	store   *repository.ContentStore
	closer  io.Closer
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// newApp builds storage, rendering, auth and the router from cfg.
func newApp(ctx context.Context, cfg *config.Config, l zerolog.Logger) (*app, error) {
	storage, err := repository.NewStorage(ctx, cfg.Storage, cfg.Secrets)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	a := &app{}
	if closer, ok := storage.(io.Closer); ok {
		a.closer = closer
	}

	renderer, err := render.New(cfg.Markdown.Engine)
	if err != nil {
		a.Close()
		return nil, err
	}

	gate, err := auth.NewGate(auth.Options{
		Password:      cfg.Secrets.AdminPassword,
		Secret:        cfg.Secrets.JWTSecret,
		Mode:          cfg.Auth.TokenMode,
		SecureCookies: cfg.Auth.SecureCookies,
		TTL:           cfg.Auth.SessionTTL,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("auth: %w", err)
	}

	clients := sse.NewSSEClients()
	a.store = repository.NewContentStore(storage, renderer)
	a.store.SetReloadNotifier(clients.NotifyReload)

	srv, err := server.New(server.Options{
		Site:        cfg.Site,
		SyntaxTheme: cfg.Markdown.SyntaxTheme,
		CORSOrigins: cfg.Server.CORSOrigins,
		Store:       a.store,
		Renderer:    renderer,
		Gate:        gate,
		Clients:     clients,
		Logger:      logger.Component(l, "http"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.handler = srv.Handler()

	l.Info().
		Str("storage", cfg.Storage.Driver).
		Str("markdown", renderer.Engine()).
		Str("token_mode", cfg.Auth.TokenMode).
		Msg("Application initialized")

	return a, nil
}

func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	a, err := newApp(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			l.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ErrorLog:          log.New(logger.Component(l, "net/http"), "", 0),
	}

	serveErr := make(chan error, 1)
	go func() {
		l.Info().Str("addr", httpServer.Addr).Msg("Listening")
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	l.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
