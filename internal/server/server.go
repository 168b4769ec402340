// Package server assembles the chi router, middleware chain and HTTP
// lifecycle around the admission pipeline and translation service.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lingogate/lingogate/internal/admission"
	"github.com/lingogate/lingogate/internal/config"
	apperrors "github.com/lingogate/lingogate/internal/errors"
	"github.com/lingogate/lingogate/internal/observability"
	servermw "github.com/lingogate/lingogate/internal/server/middleware"
	"github.com/lingogate/lingogate/internal/translate"
)

// Options carries the collaborators the server wires together. Registry
// may be nil when the metrics endpoint is disabled.
type Options struct {
	Config     *config.Config
	Pipeline   *admission.Pipeline
	Translator *translate.Service
	Registry   *prometheus.Registry
	Logger     *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a new HTTP server instance
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = observability.ServerLogger
	}

	r := chi.NewRouter()

	// Standard chi middleware
	r.Use(middleware.RealIP)

	var httpMetrics *servermw.HTTPMetrics
	if opts.Registry != nil {
		httpMetrics = servermw.NewHTTPMetrics(opts.Registry)
	}

	// Custom middleware in order: RequestID -> Metrics -> Logging -> Recovery
	r.Use(servermw.RequestID)
	r.Use(httpMetrics.Middleware)
	r.Use(servermw.RequestLogging(logger))
	r.Use(servermw.Recovery(logger, httpMetrics))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	s := &Server{
		router: r,
		cfg:    opts.Config,
		logger: logger,
	}

	s.registerRoutes(opts)

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.logger.Info("Starting HTTP server",
		zap.String("host", s.cfg.Server.Host),
		zap.Int("port", s.cfg.Server.Port),
		zap.String("addr", addr))

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured server port
func (s *Server) Port() int {
	return s.cfg.Server.Port
}
