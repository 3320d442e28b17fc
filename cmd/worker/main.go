package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mlbtrack/ingestion/internal/cache"
	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/config"
	"mlbtrack/ingestion/internal/metrics"
	"mlbtrack/ingestion/internal/repository"
	"mlbtrack/ingestion/internal/scheduler"
	"mlbtrack/ingestion/internal/server"
	syncengine "mlbtrack/ingestion/internal/sync"
	"mlbtrack/ingestion/internal/weather"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logger
	setupLogger()

	log.Info().Msg("Starting MLB Season Tracker Worker")

	// Load configuration
	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("team", cfg.TeamName).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	// Initialize schedule provider client
	espnClient := client.NewESPNClient(cfg.ESPNBaseURL, cfg.ESPNTeamID, cfg.ESPNTimeout)
	log.Info().Str("team_id", cfg.ESPNTeamID).Msg("Schedule provider client initialized")

	// Initialize database connection
	dbConfig := repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}

	db, err := repository.NewDatabase(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	// Initialize Redis client
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
		log.Info().Msg("Redis cache connected")
	}

	// Seed the venue directory
	if cfg.SeedVenuesOnStart {
		if added, err := db.Venues.Seed(ctx); err != nil {
			log.Error().Err(err).Msg("Venue seed failed, continuing anyway...")
		} else if added > 0 {
			log.Info().Int("added", added).Msg("Venue directory seeded")
		}
	}

	// Weather enrichment only runs when an API key is configured
	var observer syncengine.Observer
	if cfg.WeatherEnabled() {
		weatherClient := client.NewWeatherClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout)
		observer = weather.NewEnricher(db.Venues, weatherClient)
		log.Info().Msg("Weather enrichment enabled")
	} else {
		log.Info().Msg("No weather API key configured, enrichment disabled")
	}

	engine := syncengine.NewEngine(espnClient, db, observer, cfg.TeamName)
	runner := syncengine.NewRunner(engine)

	// Start metrics HTTP server
	if cfg.EnableMetrics {
		go startMetricsServer(strconv.Itoa(cfg.MetricsPort))
	}

	// Update system uptime and store gauges
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())

				stat := db.Pool.Stat()
				metrics.UpdateDBConnectionStats(stat.AcquiredConns(), stat.IdleConns())

				games, errG := db.Games.Count(ctx)
				results, errR := db.Results.Count(ctx)
				venues, errV := db.Venues.Count(ctx)
				if errG == nil && errR == nil && errV == nil {
					metrics.UpdateStoreStats(int64(games), int64(results), int64(venues))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Create and start scheduler
	sched := scheduler.NewScheduler(cfg, runner)

	if cfg.EnableScheduler {
		log.Info().Msg("Starting scheduler...")
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	// Start the HTTP API
	api := server.New(cfg, db, runner, redisCache)
	apiErrors := make(chan error, 1)
	go func() {
		apiErrors <- api.Start()
	}()

	// Keep running until context is cancelled or the API fails
	select {
	case err := <-apiErrors:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
		cancel()
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
