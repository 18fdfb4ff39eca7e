package cache

import "html/template"

var (
	// Content hashes of embedded static files keyed by URL path, served as ETags.
	staticCache = NewCache[string, string]()

	// Generated chroma stylesheets keyed by style name.
	syntaxCache = NewCache[string, template.CSS]()
)

func GetStaticHash(urlPath string) (string, bool) {
	return staticCache.Get(urlPath)
}

func SetStaticHash(urlPath, hash string) {
	staticCache.Set(urlPath, hash)
}

// SyntaxCSS returns the cached stylesheet for theme, generating it on the first request.
func SyntaxCSS(theme string, generate func() template.CSS) template.CSS {
	css, _ := syntaxCache.GetOrSet(theme, func() (template.CSS, error) {
		return generate(), nil
	})
	return css
}
