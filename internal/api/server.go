// Package api provides the HTTP API server and handlers for the LinkHive application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/linkhive/linkhive-server/internal/http/response"
	"github.com/linkhive/linkhive-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	bookmarkService *service.BookmarkService
	tagService      *service.TagService
	transferService *service.TransferService
	authToken       string
	corsOrigins     []string
	router          *chi.Mux
	limiter         *RateLimiter
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(bookmarkService *service.BookmarkService, tagService *service.TagService, transferService *service.TransferService, authToken string, corsOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		bookmarkService: bookmarkService,
		tagService:      tagService,
		transferService: transferService,
		authToken:       authToken,
		corsOrigins:     corsOrigins,
		router:          chi.NewRouter(),
		limiter:         NewRateLimiter(300, time.Minute, 50),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	if len(s.corsOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures all HTTP routes.
// Trailing-slash variants are registered explicitly; linkding clients
// use both forms.
func (s *Server) setupRoutes() {
	// Health check (public).
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter, s.logger))
		r.Use(s.requireAuth)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.handleListBookmarks)
			r.Post("/", s.handleCreateBookmark)
			r.Get("/check", s.handleCheckBookmark)
			r.Get("/check/", s.handleCheckBookmark)
			r.Get("/{id}", s.handleGetBookmark)
			r.Get("/{id}/", s.handleGetBookmark)
			r.Put("/{id}", s.handleUpdateBookmark)
			r.Put("/{id}/", s.handleUpdateBookmark)
			r.Patch("/{id}", s.handleUpdateBookmark)
			r.Patch("/{id}/", s.handleUpdateBookmark)
			r.Delete("/{id}", s.handleDeleteBookmark)
			r.Delete("/{id}/", s.handleDeleteBookmark)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Get("/{id}", s.handleGetTag)
			r.Get("/{id}/", s.handleGetTag)
			r.Delete("/{id}", s.handleDeleteTag)
			r.Delete("/{id}/", s.handleDeleteTag)
		})

		r.Post("/import", s.handleImport)
		r.Post("/import/", s.handleImport)
		r.Get("/export", s.handleExport)
		r.Get("/export/", s.handleExport)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
