package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mlbtrack/ingestion/internal/cache"
	"mlbtrack/ingestion/internal/config"
	"mlbtrack/ingestion/internal/repository"
	syncengine "mlbtrack/ingestion/internal/sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Server exposes the tracker over HTTP: read endpoints for games and the
// team record, and trigger endpoints for the sync passes.
type Server struct {
	cfg    *config.Config
	db     *repository.Database
	runner *syncengine.Runner
	cache  *cache.RedisCache // nil disables caching
	srv    *http.Server
}

// New creates the HTTP server. cache may be nil.
func New(cfg *config.Config, db *repository.Database, runner *syncengine.Runner, redisCache *cache.RedisCache) *Server {
	s := &Server{
		cfg:    cfg,
		db:     db,
		runner: runner,
		cache:  redisCache,
	}

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Get("/games/{eventID}", s.handleGetGame)
		r.Get("/games/{eventID}/result", s.handleGetGameResult)
		r.Get("/record", s.handleGetRecord)

		r.Post("/sync/schedule", s.handleSyncSchedule)
		r.Post("/sync/results", s.handleSyncResults)
		r.Post("/sync/outcomes", s.handleSyncOutcomes)
		r.Post("/sync/weather", s.handleSyncWeather)

		r.Post("/venues/seed", s.handleSeedVenues)
	})

	return r
}

// Start begins serving. Blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	log.Info().Int("port", s.cfg.HTTPPort).Msg("HTTP server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
