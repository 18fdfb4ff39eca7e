// Package server wires the blog's HTTP surface: the JSON API, the HTML pages, syntax theme CSS
// and the live-reload event stream.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"github.com/debemdeboas/inkwell/internal/auth"
	"github.com/debemdeboas/inkwell/internal/cache"
	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/render"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/debemdeboas/inkwell/internal/sse"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/rs/zerolog"
)

//go:embed static/* templates/*
var content embed.FS

type Options struct {
	Site        config.SiteConfig
	SyntaxTheme string
	CORSOrigins []string

	Store    *repository.ContentStore
	Renderer *render.Renderer
	Gate     *auth.Gate
	Clients  *sse.SSEClients

	Logger zerolog.Logger
}

type Server struct {
	site        config.SiteConfig
	syntaxTheme string
	corsOrigins []string

	store    *repository.ContentStore
	renderer *render.Renderer
	gate     *auth.Gate
	clients  *sse.SSEClients

	logger zerolog.Logger

	static fs.FS
	pages  map[string]*template.Template
}

func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Renderer == nil || opts.Gate == nil {
		return nil, fmt.Errorf("server needs a store, a renderer and an auth gate")
	}
	if opts.Clients == nil {
		opts.Clients = sse.NewSSEClients()
	}

	static, err := fs.Sub(content, config.StaticLocalDir)
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	hashStatic(static)

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Server{
		site:        opts.Site,
		syntaxTheme: opts.SyntaxTheme,
		corsOrigins: opts.CORSOrigins,
		store:       opts.Store,
		renderer:    opts.Renderer,
		gate:        opts.Gate,
		clients:     opts.Clients,
		logger:      opts.Logger,
		static:      static,
		pages:       pages,
	}, nil
}

// hashStatic records a content hash per embedded asset, used as its ETag and as a cache
// busting query in the templates.
func hashStatic(static fs.FS) {
	fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, p)
		if err != nil {
			return err
		}
		cache.SetStaticHash(config.StaticUrlPath+p, util.ContentHash(data))
		return nil
	})
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"staticHash": func(name string) string {
			hash, _ := cache.GetStaticHash(config.StaticUrlPath + name)
			return hash
		},
	}

	pages := make(map[string]*template.Template)
	for _, page := range []string{config.TemplateIndex, config.TemplatePost, config.TemplateNotFound} {
		tmpl, err := template.New(config.TemplateLayout).Funcs(funcs).ParseFS(content,
			path.Join(config.TemplatesLocalDir, config.TemplateLayout),
			path.Join(config.TemplatesLocalDir, page),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return pages, nil
}
