package server

import (
	"net/http"

	"github.com/debemdeboas/inkwell/internal/auth"
	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/routes"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler builds the router with every route and middleware installed.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(chimiddleware.Recoverer)

	if len(s.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Use(secureHeaders)
	router.Use(cacheIt)

	router.Get(routes.RobotsPath, serveRobots)
	router.Get(routes.Healthz, serveHealthz)
	router.Get(routes.SyntaxCSS, s.serveSyntaxCSS)
	router.Get(routes.EventsPath, s.serveEvents)
	router.Handle(config.StaticUrlPath+"*", http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(s.static))))

	router.Post(routes.APILogin, auth.LoginHandler(s.gate))
	router.Post(routes.APILogout, auth.LogoutHandler(s.gate))
	router.Get(routes.APIAuthCheck, auth.AuthCheckHandler(s.gate))

	router.Get(routes.APIPosts, s.listPosts)
	router.Get(routes.APIPost, s.getPost)

	router.Group(func(r chi.Router) {
		r.Use(s.gate.RequireAdmin)
		r.Post(routes.APIPosts, s.createPost)
		r.Post(routes.APIPreview, s.previewPost)
	})

	router.Get(routes.RootPath, s.serveIndex)
	router.Get(routes.PostPath, s.servePost)

	router.NotFound(s.serveNotFound)

	return router
}
