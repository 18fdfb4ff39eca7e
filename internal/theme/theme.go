// Package theme picks chroma syntax styles and generates their stylesheets.
package theme

import (
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/inkwell/internal/cache"
	"github.com/debemdeboas/inkwell/internal/config"
)

// Known reports whether name is a registered chroma style.
func Known(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// GetSyntaxThemeFromRequest reads the syntax-theme cookie, then the theme query parameter.
// Unknown style names are ignored in favor of def.
func GetSyntaxThemeFromRequest(r *http.Request, def string) string {
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && Known(cookie.Value) {
		return cookie.Value
	}
	if q := r.URL.Query().Get("theme"); Known(q) {
		return q
	}
	return def
}

func GetSyntaxThemes() []string {
	styleNames := styles.Names()
	slices.Sort(styleNames)
	return styleNames
}

// GetFormatter returns the class-based HTML formatter shared by both markdown engines.
func GetFormatter() *html.Formatter {
	return html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WrapLongLines(true),
	)
}

// GenerateSyntaxCSS returns the chroma stylesheet for theme. Unknown names get chroma's
// fallback style.
func GenerateSyntaxCSS(theme string) template.CSS {
	return cache.SyntaxCSS(theme, func() template.CSS {
		return writeSyntaxCSS(theme)
	})
}

func writeSyntaxCSS(theme string) template.CSS {
	var buf strings.Builder
	style := styles.Get(theme)

	bg := style.Get(chroma.Background)
	if !bg.Colour.IsSet() {
		// Styles without a foreground colour on light backgrounds render unreadable text.
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	if err := GetFormatter().WriteCSS(&buf, style); err != nil {
		themeLogger.Error().Err(err).Str("theme", theme).Msg("Error writing syntax CSS")
	}

	return template.CSS(buf.String())
}
