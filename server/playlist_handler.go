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

// GetPlaylistsHandler lists the authenticated user's playlists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlists, err := h.playlistRepo.GetPlaylistsByUser(userID)
	if err != nil {
		logger.Error("failed to fetch playlists", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch playlists")
		return
	}
	respondJSON(w, http.StatusOK, playlists)
}

// CreatePlaylistHandler creates a playlist owned by the authenticated user.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid playlist data")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid playlist data")
		return
	}

	playlist, err := h.playlistRepo.CreatePlaylist(userID, &req)
	if err != nil {
		logger.Error("failed to create playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create playlist")
		return
	}

	logger.Info("playlist created",
		logger.String("playlistId", playlist.ID),
		logger.String("userId", userID),
		logger.String("title", playlist.Title))
	respondJSON(w, http.StatusCreated, playlist)
}

// GetPlaylistHandler returns a playlist the caller owns, or any public one.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID := mux.Vars(r)["id"]

	playlist, err := h.playlistRepo.GetPlaylistByID(playlistID)
	if err != nil {
		logger.Error("failed to fetch playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch playlist")
		return
	}
	if playlist == nil || (playlist.UserID != userID && !playlist.IsPublic) {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}
	respondJSON(w, http.StatusOK, playlist)
}

// UpdatePlaylistHandler applies a partial update to an owned playlist.
func (h *APIHandler) UpdatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID := mux.Vars(r)["id"]

	playlist, err := h.ownedPlaylist(playlistID, userID)
	if err != nil {
		logger.Error("failed to fetch playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	var req model.UpdatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid playlist data")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid playlist data")
		return
	}

	updated, err := h.playlistRepo.UpdatePlaylist(playlistID, &req)
	if err != nil {
		logger.Error("failed to update playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to update playlist")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeletePlaylistHandler removes an owned playlist and its membership rows.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID := mux.Vars(r)["id"]

	playlist, err := h.ownedPlaylist(playlistID, userID)
	if err != nil {
		logger.Error("failed to fetch playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	if _, err := h.playlistRepo.DeletePlaylist(playlistID); err != nil {
		logger.Error("failed to delete playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}

	logger.Info("playlist deleted",
		logger.String("playlistId", playlistID),
		logger.String("userId", userID))
	respondJSON(w, http.StatusNoContent, nil)
}

// addPlaylistTrackRequest is the membership insert payload.
type addPlaylistTrackRequest struct {
	TrackID string `json:"trackId"`
}

// AddPlaylistTrackHandler appends a track to an owned playlist, keeping the
// trackCount and totalDuration aggregates in sync.
func (h *APIHandler) AddPlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID := mux.Vars(r)["id"]

	playlist, err := h.ownedPlaylist(playlistID, userID)
	if err != nil {
		logger.Error("failed to fetch playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to add track to playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	var req addPlaylistTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID == "" {
		respondError(w, http.StatusBadRequest, "trackId is required")
		return
	}

	row, err := h.playlistRepo.AddTrack(playlistID, req.TrackID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTrackNotFound):
			respondError(w, http.StatusNotFound, "Track not found")
		case errors.Is(err, repository.ErrDuplicatePlaylistTrack):
			respondError(w, http.StatusConflict, "Track is already in the playlist")
		case errors.Is(err, repository.ErrPlaylistNotFound):
			respondError(w, http.StatusNotFound, "Playlist not found")
		default:
			logger.Error("failed to add track to playlist", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to add track to playlist")
		}
		return
	}

	logger.Info("track added to playlist",
		logger.String("playlistId", playlistID),
		logger.String("trackId", req.TrackID),
		logger.Int("position", row.Position))
	respondJSON(w, http.StatusCreated, row)
}

// RemovePlaylistTrackHandler removes a track from an owned playlist.
func (h *APIHandler) RemovePlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	vars := mux.Vars(r)
	playlistID := vars["id"]
	trackID := vars["trackId"]

	playlist, err := h.ownedPlaylist(playlistID, userID)
	if err != nil {
		logger.Error("failed to fetch playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove track from playlist")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	removed, err := h.playlistRepo.RemoveTrack(playlistID, trackID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			respondError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("failed to remove track from playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to remove track from playlist")
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "Track is not in the playlist")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GetPlaylistTracksHandler lists a playlist's tracks in order. Owners always
// have access; public playlists are readable by any authenticated user.
func (h *APIHandler) GetPlaylistTracksHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID := mux.Vars(r)["id"]

	playlist, err := h.playlistRepo.GetPlaylistByID(playlistID)
	if err != nil {
		logger.Error("failed to fetch playlist", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch playlist tracks")
		return
	}
	if playlist == nil || (playlist.UserID != userID && !playlist.IsPublic) {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	tracks, err := h.playlistRepo.GetPlaylistTracks(playlistID)
	if err != nil {
		logger.Error("failed to fetch playlist tracks", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch playlist tracks")
		return
	}
	respondJSON(w, http.StatusOK, tracks)
}

// ownedPlaylist returns the playlist only when it exists and belongs to userID.
func (h *APIHandler) ownedPlaylist(playlistID, userID string) (*model.Playlist, error) {
	playlist, err := h.playlistRepo.GetPlaylistByID(playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil || playlist.UserID != userID {
		return nil, nil
	}
	return playlist, nil
}
