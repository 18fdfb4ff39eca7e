// Package render turns post markdown into HTML with highlighted code blocks.
//
// Output is not sanitized: raw HTML in a post is emitted as written. Posts come from the single
// authenticated admin only.
package render

import (
	"fmt"

	"github.com/debemdeboas/inkwell/internal/cache"
	"github.com/yuin/goldmark"
)

const (
	EngineGoldmark   = "goldmark"
	EngineGomarkdown = "gomarkdown"
)

type Renderer struct {
	engine   string
	goldmark goldmark.Markdown
}

func New(engine string) (*Renderer, error) {
	switch engine {
	case EngineGoldmark, "":
		return &Renderer{engine: EngineGoldmark, goldmark: newGoldmark()}, nil
	case EngineGomarkdown:
		return &Renderer{engine: EngineGomarkdown}, nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q", engine)
	}
}

func (r *Renderer) Engine() string {
	return r.engine
}

func (r *Renderer) Render(md []byte) ([]byte, error) {
	if r.engine == EngineGomarkdown {
		return renderGomarkdown(md), nil
	}
	return renderGoldmark(r.goldmark, md)
}

// Forget drops the cached rendering of the content with the given hash.
func (r *Renderer) Forget(contentHash string) {
	cache.DeleteRenderedMarkdown(contentHash, r.engine)
}

// RenderCached memoizes Render by content hash. An empty hash bypasses the cache.
func (r *Renderer) RenderCached(md []byte, contentHash string) ([]byte, error) {
	if contentHash == "" {
		renderLogger.Warn().Msg("Content hash is empty, skipping cache check")
		return r.Render(md)
	}

	if html, found := cache.GetRenderedMarkdown(contentHash, r.engine); found {
		renderLogger.Debug().Str("content_hash", contentHash).Msg("Cache hit for rendered markdown")
		return html, nil
	}

	renderLogger.Debug().Str("content_hash", contentHash).Msg("Cache miss for rendered markdown")
	html, err := r.Render(md)
	if err != nil {
		return nil, err
	}
	cache.SetRenderedMarkdown(contentHash, r.engine, html)
	return html, nil
}
