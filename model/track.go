package model

import (
	"errors"
	"time"
)

// Track lifecycle statuses. Tracks enter the catalog as "processing" and are
// moved to "published" or "draft" by their owner.
const (
	TrackStatusProcessing = "processing"
	TrackStatusPublished  = "published"
	TrackStatusDraft      = "draft"
)

// Track represents an uploaded track in an artist's catalog.
type Track struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Duration   int       `json:"duration"` // Duration in seconds
	FileURL    string    `json:"fileUrl"`
	ArtworkURL string    `json:"artworkUrl,omitempty"`
	Genre      string    `json:"genre,omitempty"`
	Status     string    `json:"status"`
	Plays      int64     `json:"plays"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ValidTrackStatus reports whether s is one of the known track statuses.
func ValidTrackStatus(s string) bool {
	switch s {
	case TrackStatusProcessing, TrackStatusPublished, TrackStatusDraft:
		return true
	}
	return false
}

// CreateTrackRequest is the payload for creating a track. Status is optional
// and defaults to "processing".
type CreateTrackRequest struct {
	Title      string `json:"title"`
	Duration   int    `json:"duration"`
	FileURL    string `json:"fileUrl"`
	ArtworkURL string `json:"artworkUrl"`
	Genre      string `json:"genre"`
	Status     string `json:"status"`
}

// Validate checks the request for required fields and value ranges.
func (r *CreateTrackRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Duration <= 0 {
		return errors.New("duration must be a positive number of seconds")
	}
	if r.FileURL == "" {
		return errors.New("fileUrl is required")
	}
	if r.Status != "" && !ValidTrackStatus(r.Status) {
		return errors.New("status must be one of processing, published, draft")
	}
	return nil
}

// UpdateTrackRequest is a partial update. Nil fields are left unchanged.
type UpdateTrackRequest struct {
	Title      *string `json:"title"`
	Duration   *int    `json:"duration"`
	FileURL    *string `json:"fileUrl"`
	ArtworkURL *string `json:"artworkUrl"`
	Genre      *string `json:"genre"`
	Status     *string `json:"status"`
}

// Validate checks the provided fields for value violations.
func (r *UpdateTrackRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return errors.New("title cannot be empty")
	}
	if r.Duration != nil && *r.Duration <= 0 {
		return errors.New("duration must be a positive number of seconds")
	}
	if r.FileURL != nil && *r.FileURL == "" {
		return errors.New("fileUrl cannot be empty")
	}
	if r.Status != nil && !ValidTrackStatus(*r.Status) {
		return errors.New("status must be one of processing, published, draft")
	}
	return nil
}
