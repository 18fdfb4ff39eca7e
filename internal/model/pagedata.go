package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/debemdeboas/inkwell/internal/routes"
	"github.com/debemdeboas/inkwell/internal/theme"
)

type PageData struct {
	SiteName        string
	SiteDescription string

	PageURL string
	Title   string

	SyntaxCSS    template.CSS
	SyntaxTheme  string
	SyntaxThemes []string
	StyleHash    string

	Posts []PostMeta
	Post  *Post
}

func NewPageData(r *http.Request, siteName, siteDescription, defaultSyntaxTheme string) *PageData {
	syntaxTheme := theme.GetSyntaxThemeFromRequest(r, defaultSyntaxTheme)
	return &PageData{
		SiteName:        siteName,
		SiteDescription: siteDescription,
		PageURL:         r.URL.Path,
		Title:           siteName,
		SyntaxTheme:     syntaxTheme,
		SyntaxThemes:    theme.GetSyntaxThemes(),
		SyntaxCSS:       theme.GenerateSyntaxCSS(syntaxTheme),
	}
}

func (pd *PageData) IsPost() bool {
	return strings.HasPrefix(pd.PageURL, routes.PostURLPrefix)
}
