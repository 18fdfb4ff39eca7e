package repository

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/debemdeboas/inkwell/internal/model"
	"github.com/debemdeboas/inkwell/internal/render"
	"github.com/debemdeboas/inkwell/internal/util"
	pkgerrors "github.com/pkg/errors"
)

type ContentStore struct {
	storage  Storage
	renderer *render.Renderer

	reloadNotifier func(model.Slug)

	now func() time.Time
}

func NewContentStore(storage Storage, renderer *render.Renderer) *ContentStore {
	return &ContentStore{
		storage:  storage,
		renderer: renderer,
		now:      time.Now,
	}
}

// SetReloadNotifier sets a function that is called after a post is saved.
func (s *ContentStore) SetReloadNotifier(notifier func(model.Slug)) {
	s.reloadNotifier = notifier
}

func (s *ContentStore) notifyPostReload(slug model.Slug) {
	if s.reloadNotifier != nil {
		s.reloadNotifier(slug)
	}
}

// ListPosts returns the metadata of every stored post, newest first. Posts whose front matter
// cannot be parsed are logged and left out.
func (s *ContentStore) ListPosts(ctx context.Context) ([]model.PostMeta, error) {
	slugs, err := s.storage.List(ctx)
	if err != nil {
		return nil, storageError(err, "list posts")
	}

	posts := make([]model.PostMeta, 0, len(slugs))
	for _, slug := range slugs {
		data, err := s.storage.Get(ctx, slug)
		if errors.Is(err, fs.ErrNotExist) {
			// Removed between List and Get.
			continue
		}
		if err != nil {
			return nil, storageError(err, "read post %s", slug)
		}

		fm, _, err := util.ParseFrontMatter(data)
		if err != nil {
			repoLogger.Warn().Err(err).Str("slug", slug).Msg("Skipping post with invalid front matter")
			continue
		}

		posts = append(posts, metaFromFrontMatter(model.Slug(slug), fm))
	}

	SortPosts(posts)
	return posts, nil
}

// GetPost loads one post and renders its body.
func (s *ContentStore) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	if !ValidSlug(slug) {
		return nil, ErrPostNotFound
	}

	data, err := s.storage.Get(ctx, slug)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, storageError(err, "read post %s", slug)
	}

	fm, body, err := util.ParseFrontMatter(data)
	if err != nil {
		return nil, frontMatterError(err, slug)
	}

	contentHash := util.ContentHash(body)
	html, err := s.renderer.RenderCached(body, contentHash)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "render post %s", slug)
	}

	return &model.Post{
		PostMeta:      metaFromFrontMatter(model.Slug(slug), fm),
		Content:       string(body),
		ContentHTML:   string(html),
		MDContentHash: contentHash,
	}, nil
}

// SavePost writes the post file for meta.Slug, replacing any existing post with that slug. An
// empty date is set to today (UTC) and an empty title to the slug.
func (s *ContentStore) SavePost(ctx context.Context, meta model.PostMeta, content string) (model.PostMeta, error) {
	slug := string(meta.Slug)
	if !ValidSlug(slug) {
		return meta, ErrInvalidSlug
	}

	if meta.Date == "" {
		meta.Date = s.now().UTC().Format(time.DateOnly)
	}
	meta = model.NewPostMeta(meta.Slug, meta.Title, meta.Date, meta.Description, meta.Tags)

	data, err := util.EncodeFrontMatter(util.FrontMatter{
		Title:       meta.Title,
		Date:        util.Date(meta.Date),
		Description: meta.Description,
		Tags:        meta.Tags,
	}, []byte(content))
	if err != nil {
		return meta, pkgerrors.WithStack(err)
	}

	staleHash := s.bodyHash(ctx, slug)

	if err := s.storage.Put(ctx, slug, data); err != nil {
		if errors.Is(err, ErrInvalidSlug) {
			return meta, err
		}
		return meta, storageError(err, "write post %s", slug)
	}

	if staleHash != "" && staleHash != hashBody(data) {
		s.renderer.Forget(staleHash)
	}

	repoLogger.Info().Str("slug", slug).Str("title", meta.Title).Msg("Post saved")
	s.notifyPostReload(meta.Slug)
	return meta, nil
}

// bodyHash returns the content hash of the stored post body, or "" when there is none.
func (s *ContentStore) bodyHash(ctx context.Context, slug string) string {
	data, err := s.storage.Get(ctx, slug)
	if err != nil {
		return ""
	}
	return hashBody(data)
}

func hashBody(data []byte) string {
	_, body, err := util.ParseFrontMatter(data)
	if err != nil {
		return ""
	}
	return util.ContentHash(body)
}

func metaFromFrontMatter(slug model.Slug, fm *util.FrontMatter) model.PostMeta {
	return model.NewPostMeta(slug, strings.TrimSpace(fm.Title), string(fm.Date), fm.Description, fm.Tags)
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, time.DateTime}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortPosts orders posts by date, newest first. Posts without a parseable date come last. Ties
// are broken by slug.
func SortPosts(posts []model.PostMeta) {
	slices.SortStableFunc(posts, func(a, b model.PostMeta) int {
		ta, okA := parseDate(a.Date)
		tb, okB := parseDate(b.Date)

		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case okA && okB:
			if c := tb.Compare(ta); c != 0 {
				return c
			}
		}
		return strings.Compare(string(a.Slug), string(b.Slug))
	})
}
