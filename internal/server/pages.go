package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/model"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/debemdeboas/inkwell/internal/theme"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/rs/zerolog"
)

func (s *Server) pageData(r *http.Request) *model.PageData {
	data := model.NewPageData(r, s.site.Name, s.site.Description, s.syntaxTheme)
	data.StyleHash = util.ContentHashString(string(data.SyntaxCSS))
	return data
}

// renderPage executes the page into a buffer first so a template failure still yields a clean
// 500 instead of a truncated page.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data *model.PageData) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, config.TemplateLayout, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", page).Msg("Failed to render page")
		http.Error(w, config.ErrMsgServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Stack().Err(err).Msg("Failed to list posts")
		http.Error(w, config.ErrMsgServerError, http.StatusInternalServerError)
		return
	}

	data := s.pageData(r)
	data.Posts = posts

	s.renderPage(w, r, http.StatusOK, config.TemplateIndex, data)
}

func (s *Server) servePost(w http.ResponseWriter, r *http.Request) {
	slug, ok := slugParam(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}

	post, err := s.store.GetPost(r.Context(), slug)
	if errors.Is(err, repository.ErrPostNotFound) {
		s.renderNotFound(w, r)
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Stack().Err(err).Str("slug", slug).Msg("Failed to read post")
		http.Error(w, config.ErrMsgServerError, http.StatusInternalServerError)
		return
	}

	data := s.pageData(r)
	data.Title = post.Title + " | " + s.site.Name
	data.Post = post

	s.renderPage(w, r, http.StatusOK, config.TemplatePost, data)
}

// serveNotFound answers unknown API paths with JSON and everything else with the HTML page.
func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		util.WriteError(w, http.StatusNotFound, config.ErrMsgNotFound)
		return
	}
	s.renderNotFound(w, r)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r)
	data.Title = config.ErrMsgNotFound + " | " + s.site.Name
	s.renderPage(w, r, http.StatusNotFound, config.TemplateNotFound, data)
}

func (s *Server) serveSyntaxCSS(w http.ResponseWriter, r *http.Request) {
	name := theme.GetSyntaxThemeFromRequest(r, s.syntaxTheme)
	themeStyle := []byte(theme.GenerateSyntaxCSS(name))
	etag := util.ContentHash(themeStyle)

	w.Header().Set(config.HETag, etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set(config.HCType, config.CTypeCSS)
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}

func serveRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeText)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User-agent: *\nDisallow:"))
}
