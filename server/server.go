package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"soundlift/config"
	"soundlift/core/analytics"
	"soundlift/core/auth"
	"soundlift/logger"
	"soundlift/repository"
)

// NewRouter builds the API router for the given handler. Split out from Start
// so tests can drive the full route table through httptest.
func NewRouter(h *APIHandler, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	// Auth endpoints
	router.HandleFunc("/api/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/user", h.AuthMiddleware(h.CurrentUserHandler)).Methods(http.MethodGet)

	// Track endpoints. Play recording is open to anonymous listeners.
	router.HandleFunc("/api/tracks", h.AuthMiddleware(h.GetTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks", h.AuthMiddleware(h.CreateTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/tracks/{id}", h.AuthMiddleware(h.GetTrackHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}", h.AuthMiddleware(h.UpdateTrackHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/tracks/{id}", h.AuthMiddleware(h.DeleteTrackHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/tracks/{id}/play", h.PlayTrackHandler).Methods(http.MethodPost)

	// Playlist endpoints
	router.HandleFunc("/api/playlists", h.AuthMiddleware(h.GetPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", h.AuthMiddleware(h.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.GetPlaylistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.UpdatePlaylistHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/tracks", h.AuthMiddleware(h.GetPlaylistTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/tracks", h.AuthMiddleware(h.AddPlaylistTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/tracks/{trackId}", h.AuthMiddleware(h.RemovePlaylistTrackHandler)).Methods(http.MethodDelete)

	// Analytics endpoints
	router.HandleFunc("/api/analytics", h.AuthMiddleware(h.AnalyticsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/dashboard/stats", h.AuthMiddleware(h.DashboardStatsHandler)).Methods(http.MethodGet)

	return router
}

// Start initializes and starts the HTTP server, blocking until shutdown.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	store := repository.NewMemoryStore()
	userRepo := repository.NewUserRepository(store)
	trackRepo := repository.NewTrackRepository(store)
	playlistRepo := repository.NewPlaylistRepository(store)
	analyticsRepo := repository.NewAnalyticsRepository(store)

	analyticsService := analytics.NewService(trackRepo, playlistRepo, analyticsRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	apiHandler := NewAPIHandler(userRepo, trackRepo, playlistRepo, analyticsService, tokens, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      NewRouter(apiHandler, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}
	logger.Info("server stopped")
}
