package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/handler"
	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/metrics"
	authmw "socialhub_backend/internal/transport/http/middleware"
)

// APIPrefix is the mount point of every versioned route.
const APIPrefix = "/api/v1"

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	ProfileHandler *handler.ProfileHandler
	FollowHandler  *handler.FollowHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	MediaHandler   *handler.MediaHandler
	HealthHandler  *handler.HealthHandler

	SessionProvider auth.Provider
	// AuthProxy forwards /api/auth/* to the auth service. Nil disables the route.
	AuthProxy http.Handler

	CORSAllowedOrigins []string

	// Docs are mounted only when DocsPath is set. Empty credentials leave
	// the UI open, which the server allows only for local runs.
	DocsPath         string
	DocsUsername     string
	DocsPasswordHash string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Handle("/metrics", metrics.Handler())

	if cfg.AuthProxy != nil {
		r.Handle("/api/auth/*", cfg.AuthProxy)
	}

	if cfg.DocsPath != "" {
		docs := handler.DocsUI(cfg.DocsPath)
		if cfg.DocsUsername != "" && cfg.DocsPasswordHash != "" {
			docs = handler.BasicAuth(cfg.DocsUsername, cfg.DocsPasswordHash)(docs)
		}
		r.Handle(cfg.DocsPath, docs)
		r.Handle(cfg.DocsPath+"/*", docs)
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(authmw.SessionMiddleware(cfg.SessionProvider))

		r.Get("/openapi.json", handler.OpenAPI)

		r.Get("/health", cfg.HealthHandler.Health)
		r.Get("/health/ready", cfg.HealthHandler.Ready)

		// Public reads; the session is optional.
		r.Get("/posts", cfg.PostHandler.List)
		r.Get("/posts/{id}", cfg.PostHandler.GetByID)
		r.Get("/posts/{id}/comments", cfg.CommentHandler.List)
		r.Get("/users/{id}", cfg.ProfileHandler.GetProfile)
		r.Get("/users/{id}/posts", cfg.PostHandler.ListUserPosts)
		r.Get("/users/{id}/followers", cfg.FollowHandler.ListFollowers)
		r.Get("/users/{id}/following", cfg.FollowHandler.ListFollowing)

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth)

			r.Get("/users/me", cfg.ProfileHandler.GetMe)
			r.Patch("/users/me", cfg.ProfileHandler.UpdateMe)
			r.Post("/users/me/avatar", cfg.ProfileHandler.UploadAvatar)

			r.Post("/users/{id}/follow", cfg.FollowHandler.Toggle)

			r.Post("/posts", cfg.PostHandler.Create)
			r.Delete("/posts/{id}", cfg.PostHandler.Delete)
			r.Post("/posts/{id}/like", cfg.PostHandler.ToggleLike)
			r.Post("/posts/{id}/comments", cfg.CommentHandler.Create)

			r.Post("/comments/{id}/like", cfg.CommentHandler.ToggleLike)

			r.Post("/media/presign", cfg.MediaHandler.PresignPostUpload)
			r.Post("/media/presign/batch", cfg.MediaHandler.PresignPostUploadBatch)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteNotFound(w, "Route not found")
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Cookie", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
