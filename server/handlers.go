package server

import (
	"encoding/json"
	"net/http"

	"soundlift/config"
	"soundlift/core/analytics"
	"soundlift/core/auth"
	"soundlift/logger"
	"soundlift/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	userRepo     repository.UserRepository
	trackRepo    repository.TrackRepository
	playlistRepo repository.PlaylistRepository
	analytics    *analytics.Service
	tokens       *auth.TokenManager
	cfg          *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	trackRepo repository.TrackRepository,
	playlistRepo repository.PlaylistRepository,
	analyticsService *analytics.Service,
	tokens *auth.TokenManager,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:     userRepo,
		trackRepo:    trackRepo,
		playlistRepo: playlistRepo,
		analytics:    analyticsService,
		tokens:       tokens,
		cfg:          cfg,
	}
}

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

// respondError writes a JSON error body of the form {"message": ...}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
