// Package routes defines HTTP route constants for the application.
package routes

// API Routes
const (
	APILogin     = "/api/login"
	APIAuthCheck = "/api/auth-check"
	APILogout    = "/api/logout"

	APIPosts   = "/api/posts"
	APIPost    = "/api/posts/{slug}"
	APIPreview = "/api/preview"
)

// Page routes
const (
	RootPath = "/"
	PostPath = "/post/{slug}"

	PostURLPrefix = "/post/"
)

const (
	SyntaxCSS  = "/syntax.css"
	EventsPath = "/events"
	Healthz    = "/healthz"
	RobotsPath = "/robots.txt"
)

// SlugParam is the chi URL parameter carrying the post slug.
const SlugParam = "slug"
