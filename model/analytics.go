package model

import "time"

// AnalyticsEvent is an immutable fact recording a play or revenue increment
// at a point in time. Events are append-only: totals are derived by summing
// events, never by mutating a stored event.
type AnalyticsEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	TrackID    string    `json:"trackId,omitempty"`
	PlaylistID string    `json:"playlistId,omitempty"`
	Date       time.Time `json:"date"`
	Plays      int       `json:"plays"`
	Revenue    float64   `json:"revenue"`
}
