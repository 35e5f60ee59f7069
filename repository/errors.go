package repository

import "errors"

// Sentinel errors returned by repository operations. Handlers map these to
// HTTP status codes at the boundary.
var (
	ErrDuplicateUser          = errors.New("username or email already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrTrackNotFound          = errors.New("track not found")
	ErrPlaylistNotFound       = errors.New("playlist not found")
	ErrDuplicatePlaylistTrack = errors.New("track is already in the playlist")
	ErrPlaylistTrackNotFound  = errors.New("track is not in the playlist")
)
