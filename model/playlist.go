package model

import (
	"errors"
	"time"
)

// Playlist is a user-curated collection of tracks. TrackCount and
// TotalDuration are denormalized aggregates maintained by the membership
// operations; they are never recomputed from scratch on read.
type Playlist struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	CoverURL      string    `json:"coverUrl,omitempty"`
	TrackCount    int       `json:"trackCount"`
	TotalDuration int       `json:"totalDuration"` // Seconds across all member tracks
	Plays         int64     `json:"plays"`
	IsPublic      bool      `json:"isPublic"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PlaylistTrack is a membership row linking a track into a playlist at a
// 1-based position.
type PlaylistTrack struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlistId"`
	TrackID    string    `json:"trackId"`
	Position   int       `json:"position"`
	AddedAt    time.Time `json:"addedAt"`
}

// CreatePlaylistRequest is the payload for creating a playlist. IsPublic
// defaults to true when omitted.
type CreatePlaylistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	IsPublic    *bool  `json:"isPublic"`
}

// Validate checks the request for required fields.
func (r *CreatePlaylistRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// UpdatePlaylistRequest is a partial update. Nil fields are left unchanged.
type UpdatePlaylistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
	IsPublic    *bool   `json:"isPublic"`
}

// Validate checks the provided fields for value violations.
func (r *UpdatePlaylistRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}
