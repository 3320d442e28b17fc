package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mlbtrack/ingestion/internal/models"
	syncengine "mlbtrack/ingestion/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRecord      = "mlbtrack:record"
	cacheKeyRecentGames = "mlbtrack:games:recent"

	defaultGamesLimit = 20
	maxGamesLimit     = 200
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	limit := defaultGamesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if v > maxGamesLimit {
			v = maxGamesLimit
		}
		limit = v
	}

	// Only the default page is cached; odd limits go to the database.
	cacheable := limit == defaultGamesLimit
	if cacheable && s.cache != nil {
		var cached []gameView
		if err := s.cache.Get(r.Context(), cacheKeyRecentGames, &cached); err == nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{"games": cached, "count": len(cached)})
			return
		}
	}

	games, err := s.db.Games.ListRecent(r.Context(), s.cfg.TeamName, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list games")
		writeError(w, http.StatusInternalServerError, "failed to list games")
		return
	}

	views := make([]gameView, 0, len(games))
	for _, g := range games {
		views = append(views, newGameView(g))
	}

	if cacheable && s.cache != nil {
		ttl := time.Duration(s.cfg.CacheTTLGames) * time.Second
		if err := s.cache.Set(r.Context(), cacheKeyRecentGames, views, ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache recent games")
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": views, "count": len(views)})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	game, err := s.db.Games.GetByEventID(r.Context(), eventID)
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("Failed to get game")
		writeError(w, http.StatusInternalServerError, "failed to get game")
		return
	}
	if game == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game))
}

func (s *Server) handleGetGameResult(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	game, err := s.db.Games.GetByEventID(r.Context(), eventID)
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("Failed to get game")
		writeError(w, http.StatusInternalServerError, "failed to get game")
		return
	}
	if game == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	result, err := s.db.Results.GetByGameID(r.Context(), game.ID)
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("Failed to get game result")
		writeError(w, http.StatusInternalServerError, "failed to get game result")
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "game has no result")
		return
	}

	writeJSON(w, http.StatusOK, newResultView(result))
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		var cached models.TeamRecord
		if err := s.cache.Get(r.Context(), cacheKeyRecord, &cached); err == nil {
			writeJSON(w, http.StatusOK, &cached)
			return
		}
	}

	record, err := s.runner.Engine().Record(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute record")
		writeError(w, http.StatusInternalServerError, "failed to compute record")
		return
	}

	if s.cache != nil {
		ttl := time.Duration(s.cfg.CacheTTLRecord) * time.Second
		if err := s.cache.Set(r.Context(), cacheKeyRecord, record, ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache record")
		}
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleSyncSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.SyncSchedule(r.Context())
	switch {
	case errors.Is(err, syncengine.ErrSyncInProgress):
		writeError(w, http.StatusConflict, "a sync is already in progress")
		return
	case errors.Is(err, syncengine.ErrEmptySchedule):
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":       "schedule provider returned no events",
			"games_added":   0,
			"total_fetched": 0,
		})
		return
	case err != nil:
		log.Error().Err(err).Msg("Schedule sync failed")
		writeError(w, http.StatusBadGateway, "schedule sync failed")
		return
	}

	s.invalidateCache(r.Context())
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSyncResults(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.SyncResults(r.Context())
	switch {
	case errors.Is(err, syncengine.ErrSyncInProgress):
		writeError(w, http.StatusConflict, "a sync is already in progress")
		return
	case err != nil:
		log.Error().Err(err).Msg("Result sync failed")
		writeError(w, http.StatusBadGateway, "result sync failed")
		return
	}

	if result.UpdatedGames > 0 {
		s.invalidateCache(r.Context())
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSyncOutcomes(w http.ResponseWriter, r *http.Request) {
	repaired, err := s.runner.RepairOutcomes(r.Context())
	switch {
	case errors.Is(err, syncengine.ErrSyncInProgress):
		writeError(w, http.StatusConflict, "a sync is already in progress")
		return
	case err != nil:
		log.Error().Err(err).Msg("Outcome repair failed")
		writeError(w, http.StatusInternalServerError, "outcome repair failed")
		return
	}

	if repaired > 0 {
		s.invalidateCache(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]int{"repaired": repaired})
}

func (s *Server) handleSyncWeather(w http.ResponseWriter, r *http.Request) {
	enriched, err := s.runner.BackfillWeather(r.Context())
	switch {
	case errors.Is(err, syncengine.ErrSyncInProgress):
		writeError(w, http.StatusConflict, "a sync is already in progress")
		return
	case err != nil:
		log.Error().Err(err).Msg("Weather backfill failed")
		writeError(w, http.StatusInternalServerError, "weather backfill failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"enriched": enriched})
}

func (s *Server) handleSeedVenues(w http.ResponseWriter, r *http.Request) {
	added, err := s.db.Venues.Seed(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Venue seed failed")
		writeError(w, http.StatusInternalServerError, "venue seed failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}

// invalidateCache drops the read caches after a pass changed the store.
func (s *Server) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyRecord, cacheKeyRecentGames); err != nil {
		log.Warn().Err(err).Msg("Cache invalidation failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
