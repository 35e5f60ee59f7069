package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"soundlift/logger"
	"soundlift/model"
	"soundlift/repository"
)

// GetTracksHandler lists the authenticated user's tracks.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tracks, err := h.trackRepo.GetTracksByUser(userID)
	if err != nil {
		logger.Error("failed to fetch tracks", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch tracks")
		return
	}
	respondJSON(w, http.StatusOK, tracks)
}

// CreateTrackHandler creates a track owned by the authenticated user.
func (h *APIHandler) CreateTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.CreateTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track data")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track data")
		return
	}

	track, err := h.trackRepo.CreateTrack(userID, &req)
	if err != nil {
		logger.Error("failed to create track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create track")
		return
	}

	logger.Info("track created",
		logger.String("trackId", track.ID),
		logger.String("userId", userID),
		logger.String("title", track.Title))
	respondJSON(w, http.StatusCreated, track)
}

// GetTrackHandler returns one of the authenticated user's tracks.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	trackID := mux.Vars(r)["id"]

	track, err := h.ownedTrack(trackID, userID)
	if err != nil {
		logger.Error("failed to fetch track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch track")
		return
	}
	if track == nil {
		respondError(w, http.StatusNotFound, "Track not found")
		return
	}
	respondJSON(w, http.StatusOK, track)
}

// UpdateTrackHandler applies a partial update to an owned track.
func (h *APIHandler) UpdateTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	trackID := mux.Vars(r)["id"]

	track, err := h.ownedTrack(trackID, userID)
	if err != nil {
		logger.Error("failed to fetch track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update track")
		return
	}
	if track == nil {
		// Missing and not-owned respond identically so existence can't be probed.
		respondError(w, http.StatusNotFound, "Track not found")
		return
	}

	var req model.UpdateTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track data")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track data")
		return
	}

	updated, err := h.trackRepo.UpdateTrack(trackID, &req)
	if err != nil {
		logger.Error("failed to update track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update track")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Track not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrackHandler removes an owned track.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	trackID := mux.Vars(r)["id"]

	track, err := h.ownedTrack(trackID, userID)
	if err != nil {
		logger.Error("failed to fetch track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete track")
		return
	}
	if track == nil {
		respondError(w, http.StatusNotFound, "Track not found")
		return
	}

	if _, err := h.trackRepo.DeleteTrack(trackID); err != nil {
		logger.Error("failed to delete track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete track")
		return
	}

	logger.Info("track deleted",
		logger.String("trackId", trackID),
		logger.String("userId", userID))
	respondJSON(w, http.StatusNoContent, nil)
}

// PlayTrackHandler records one play against a track. Listeners are anonymous,
// so no auth is required.
func (h *APIHandler) PlayTrackHandler(w http.ResponseWriter, r *http.Request) {
	trackID := mux.Vars(r)["id"]

	if err := h.analytics.RecordPlay(trackID); err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			respondError(w, http.StatusNotFound, "Track not found")
			return
		}
		logger.Error("failed to record play", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to record play")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Play recorded"})
}

// ownedTrack returns the track only when it exists and belongs to userID.
func (h *APIHandler) ownedTrack(trackID, userID string) (*model.Track, error) {
	track, err := h.trackRepo.GetTrackByID(trackID)
	if err != nil {
		return nil, err
	}
	if track == nil || track.UserID != userID {
		return nil, nil
	}
	return track, nil
}
