package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-memories/internal/web/handlers"
	"github.com/kozaktomas/photo-memories/internal/web/middleware"
)

func (s *Server) setupRoutes(deps Deps) {
	// Create handlers
	memoriesHandler := handlers.NewMemoriesHandler(deps.Store)
	detectHandler := handlers.NewDetectHandler(deps.Source, deps.Strategies, deps.Store)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(s.config.Memories.APIToken))

			// Stored memory clusters
			r.Get("/memories", memoriesHandler.List)
			r.Get("/memories/{id}", memoriesHandler.Get)
			r.Delete("/memories/{id}", memoriesHandler.Delete)

			// On-demand detection
			r.Post("/detect", detectHandler.Detect)
		})
	})
}
