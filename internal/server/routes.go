package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lingogate/lingogate/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(opts Options) {
	translateHandler := handlers.NewTranslate(opts.Pipeline, opts.Translator, opts.Config, s.logger)
	healthHandler := handlers.NewHealth(opts.Pipeline, opts.Translator, opts.Config)
	configHandler := handlers.NewConfig(opts.Pipeline, opts.Config)

	s.router.Post("/translate", translateHandler.ServeHTTP)
	s.router.Get("/health", healthHandler.ServeHTTP)
	s.router.Get("/config", configHandler.ServeHTTP)
	s.router.Get("/version", handlers.VersionHandler)

	if opts.Registry != nil && opts.Config.Metrics.Enabled {
		s.router.Get("/metrics", promhttp.HandlerFor(
			opts.Registry, promhttp.HandlerOpts{}).ServeHTTP)
	}
}
