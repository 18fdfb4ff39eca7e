// Package model holds the post types shared by the store, the renderer and the HTTP layer.
package model

import "html/template"

type Slug string

// PostMeta is the listing view of a post. Tags is never nil so it encodes as [] in JSON.
type PostMeta struct {
	Slug        Slug     `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type Post struct {
	PostMeta

	Content       string `json:"content"`
	ContentHTML   string `json:"contentHtml"`
	MDContentHash string `json:"-"`
}

// HTML returns the rendered body for use in templates. The renderer does not sanitize.
func (p *Post) HTML() template.HTML {
	return template.HTML(p.ContentHTML)
}

// NewPostMeta fills the defaults for optional fields.
func NewPostMeta(slug Slug, title, date, description string, tags []string) PostMeta {
	if title == "" {
		title = string(slug)
	}
	if tags == nil {
		tags = []string{}
	}
	return PostMeta{
		Slug:        slug,
		Title:       title,
		Date:        date,
		Description: description,
		Tags:        tags,
	}
}
