package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/debemdeboas/inkwell/internal/auth"
	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/model"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/debemdeboas/inkwell/internal/routes"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxPostBodyBytes = 8 << 20

	previewPlaceholder = "Start typing in the editor to see a preview here."
)

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Stack().Err(err).Msg("Failed to list posts")
		util.WriteError(w, http.StatusInternalServerError, config.ErrMsgServerError)
		return
	}

	util.WriteJSON(w, http.StatusOK, posts)
}

// slugParam returns the decoded slug path segment. chi hands back the raw segment when the
// request path carries non-canonical escapes, such as lowercase hex.
func slugParam(r *http.Request) (string, bool) {
	slug := chi.URLParam(r, routes.SlugParam)
	if r.URL.RawPath == "" {
		return slug, true
	}

	slug, err := url.PathUnescape(slug)
	if err != nil {
		return "", false
	}
	return slug, true
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	slug, ok := slugParam(r)
	if !ok {
		util.WriteError(w, http.StatusNotFound, config.ErrMsgPostNotFound)
		return
	}

	post, err := s.store.GetPost(r.Context(), slug)
	if errors.Is(err, repository.ErrPostNotFound) {
		util.WriteError(w, http.StatusNotFound, config.ErrMsgPostNotFound)
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Stack().Err(err).Str("slug", slug).Msg("Failed to read post")
		util.WriteError(w, http.StatusInternalServerError, config.ErrMsgServerError)
		return
	}

	util.WriteJSON(w, http.StatusOK, post)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	l := zerolog.Ctx(r.Context())

	var req createPostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBodyBytes)).Decode(&req); err != nil {
		l.Debug().Err(err).Msg("Malformed create post request")
		util.WriteError(w, http.StatusBadRequest, config.ErrMsgInvalidBody)
		return
	}

	req.normalize()
	if err := validateStruct(req); err != nil {
		l.Debug().Err(err).Msg("Rejected create post request")
		util.WriteError(w, http.StatusBadRequest, config.ErrMsgRequiredFields)
		return
	}

	if !repository.ValidSlug(req.Slug) {
		l.Warn().Str("slug", req.Slug).Msg("Rejected unsafe slug")
		util.WriteError(w, http.StatusBadRequest, config.ErrMsgInvalidSlug)
		return
	}

	meta := model.PostMeta{
		Slug:        model.Slug(req.Slug),
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}

	saved, err := s.store.SavePost(r.Context(), meta, req.Content)
	if errors.Is(err, repository.ErrInvalidSlug) {
		util.WriteError(w, http.StatusBadRequest, config.ErrMsgInvalidSlug)
		return
	}
	if err != nil {
		l.Error().Stack().Err(err).Str("slug", req.Slug).Msg("Failed to save post")
		util.WriteError(w, http.StatusInternalServerError, config.ErrMsgServerError)
		return
	}

	admin, _ := auth.AdminFromContext(r.Context())
	l.Info().Str("slug", req.Slug).Str("admin", admin).Msg("Post published")

	util.WriteJSON(w, http.StatusOK, util.SuccessResponse{Success: true, Slug: string(saved.Slug)})
}

func (s *Server) previewPost(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBodyBytes)).Decode(&req); err != nil {
		util.WriteError(w, http.StatusBadRequest, config.ErrMsgInvalidBody)
		return
	}

	md := req.Content
	if md == "" {
		md = previewPlaceholder
	}

	// Drafts change on every keystroke, so they skip the render cache.
	html, err := s.renderer.Render([]byte(md))
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render preview")
		util.WriteError(w, http.StatusInternalServerError, config.ErrMsgServerError)
		return
	}

	util.WriteJSON(w, http.StatusOK, previewResponse{HTML: string(html)})
}

func serveHealthz(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
