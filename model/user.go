package model

import "time"

// User is an artist account on the platform.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed in API responses
	ArtistName   string    `json:"artistName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
