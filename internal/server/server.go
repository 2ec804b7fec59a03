// Package server provides the HTTP server and routing for Investa.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aristath/investa/internal/di"
	"github.com/aristath/investa/internal/metrics"
	assethandlers "github.com/aristath/investa/internal/modules/assets/handlers"
	goalhandlers "github.com/aristath/investa/internal/modules/goals/handlers"
	insighthandlers "github.com/aristath/investa/internal/modules/insights/handlers"
	riskhandlers "github.com/aristath/investa/internal/modules/risk/handlers"
	zakathandlers "github.com/aristath/investa/internal/modules/zakat/handlers"
	"github.com/aristath/investa/internal/session"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Port      int
	DevMode   bool
	Container *di.Container // DI container with all services
	Jobs      *di.JobInstances
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	container      *di.Container
	systemHandlers *SystemHandlers
	backupHandlers *BackupHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		port:      cfg.Port,
		container: cfg.Container,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.Container.Workspace.DataDir(),
			cfg.Container.Scheduler,
		),
		backupHandlers: NewBackupHandlers(cfg.Container.Backup, cfg.Log),
	}

	if cfg.Jobs != nil {
		s.systemHandlers.SetJob(cfg.Jobs.DataMaintenance)
		if cfg.Jobs.Backup != nil {
			s.systemHandlers.SetJob(cfg.Jobs.Backup)
		}
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the configured handler (used by tests)
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.container.Registry, promhttp.HandlerOpts{}))

	services := s.container.Services

	assetHandler := assethandlers.NewHandler(services, s.log)
	riskHandler := riskhandlers.NewHandler(services, s.log)
	goalHandler := goalhandlers.NewHandler(services, s.log)
	insightHandler := insighthandlers.NewHandler(s.container.Insights, s.log)
	zakatHandler := zakathandlers.NewHandler(s.log)

	s.router.Route("/api", func(r chi.Router) {
		// Stateless calculators
		zakatHandler.RegisterRoutes(r)
		riskHandler.RegisterPublicRoutes(r)

		// System monitoring and operations
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/jobs", s.systemHandlers.HandleJobsStatus)
			r.Post("/jobs/{name}/run", s.systemHandlers.HandleRunJob)
		})
		s.backupHandlers.RegisterRoutes(r)

		// Per-user data; the session is taken from the URL
		r.Route("/users/{"+session.URLParam+"}", func(r chi.Router) {
			r.Use(session.Middleware)
			assetHandler.RegisterRoutes(r)
			riskHandler.RegisterRoutes(r)
			goalHandler.RegisterRoutes(r)
			insightHandler.RegisterRoutes(r)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests and counts them by method and status
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
