package repository

import (
	"sort"

	"soundlift/model"
)

// PlaylistRepository defines the interface for playlist data operations,
// including track membership. Membership writes keep the denormalized
// TrackCount and TotalDuration aggregates in sync with the membership rows.
type PlaylistRepository interface {
	GetPlaylistByID(id string) (*model.Playlist, error)
	GetPlaylistsByUser(userID string) ([]*model.Playlist, error)
	CreatePlaylist(userID string, req *model.CreatePlaylistRequest) (*model.Playlist, error)
	UpdatePlaylist(id string, req *model.UpdatePlaylistRequest) (*model.Playlist, error)
	DeletePlaylist(id string) (bool, error)

	AddTrack(playlistID, trackID string) (*model.PlaylistTrack, error)
	RemoveTrack(playlistID, trackID string) (bool, error)
	GetPlaylistTracks(playlistID string) ([]*model.Track, error)
}

// memoryPlaylistRepository implements PlaylistRepository over a MemoryStore.
type memoryPlaylistRepository struct {
	s *MemoryStore
}

// NewPlaylistRepository creates a PlaylistRepository backed by the given store.
func NewPlaylistRepository(s *MemoryStore) PlaylistRepository {
	return &memoryPlaylistRepository{s: s}
}

// GetPlaylistByID retrieves a playlist by ID. Returns (nil, nil) when absent.
func (r *memoryPlaylistRepository) GetPlaylistByID(id string) (*model.Playlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.playlists[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

// GetPlaylistsByUser returns all playlists owned by the user, unordered.
func (r *memoryPlaylistRepository) GetPlaylistsByUser(userID string) ([]*model.Playlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	playlists := make([]*model.Playlist, 0)
	for _, p := range r.s.playlists {
		if p.UserID == userID {
			out := *p
			playlists = append(playlists, &out)
		}
	}
	return playlists, nil
}

// CreatePlaylist adds a new playlist owned by userID. Aggregates start at
// zero and visibility defaults to public. The owning user must exist.
func (r *memoryPlaylistRepository) CreatePlaylist(userID string, req *model.CreatePlaylistRequest) (*model.Playlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	playlist := &model.Playlist{
		ID:            r.s.newID(),
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		TrackCount:    0,
		TotalDuration: 0,
		Plays:         0,
		IsPublic:      isPublic,
		CreatedAt:     r.s.now(),
	}
	r.s.playlists[playlist.ID] = playlist

	out := *playlist
	return &out, nil
}

// UpdatePlaylist shallow-merges the provided fields over the stored playlist.
// Returns (nil, nil) when the ID is unknown.
func (r *memoryPlaylistRepository) UpdatePlaylist(id string, req *model.UpdatePlaylistRequest) (*model.Playlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.playlists[id]
	if !ok {
		return nil, nil
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.CoverURL != nil {
		p.CoverURL = *req.CoverURL
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}

	out := *p
	return &out, nil
}

// DeletePlaylist removes a playlist and its membership rows. Returns false
// when no playlist existed.
func (r *memoryPlaylistRepository) DeletePlaylist(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.playlists[id]; !ok {
		return false, nil
	}

	for ptID, pt := range r.s.playlistTracks {
		if pt.PlaylistID == id {
			delete(r.s.playlistTracks, ptID)
		}
	}
	delete(r.s.playlists, id)
	return true, nil
}

// AddTrack appends a track to the end of a playlist and bumps the playlist
// aggregates in the same critical section.
func (r *memoryPlaylistRepository) AddTrack(playlistID, trackID string) (*model.PlaylistTrack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.playlists[playlistID]
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	t, ok := r.s.tracks[trackID]
	if !ok {
		return nil, ErrTrackNotFound
	}

	maxPos := 0
	for _, pt := range r.s.playlistTracks {
		if pt.PlaylistID != playlistID {
			continue
		}
		if pt.TrackID == trackID {
			return nil, ErrDuplicatePlaylistTrack
		}
		if pt.Position > maxPos {
			maxPos = pt.Position
		}
	}

	row := &model.PlaylistTrack{
		ID:         r.s.newID(),
		PlaylistID: playlistID,
		TrackID:    trackID,
		Position:   maxPos + 1,
		AddedAt:    r.s.now(),
	}
	r.s.playlistTracks[row.ID] = row

	p.TrackCount++
	p.TotalDuration += t.Duration

	out := *row
	return &out, nil
}

// RemoveTrack removes a track from a playlist, re-packs positions and
// decrements the playlist aggregates. Returns ErrPlaylistNotFound when the
// playlist is unknown and (false, nil) when the track is not a member.
func (r *memoryPlaylistRepository) RemoveTrack(playlistID, trackID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.playlists[playlistID]
	if !ok {
		return false, ErrPlaylistNotFound
	}

	for ptID, pt := range r.s.playlistTracks {
		if pt.PlaylistID != playlistID || pt.TrackID != trackID {
			continue
		}
		pos := pt.Position
		delete(r.s.playlistTracks, ptID)
		repackPositions(r.s, playlistID, pos)

		p.TrackCount--
		if t, ok := r.s.tracks[trackID]; ok {
			p.TotalDuration -= t.Duration
		}
		return true, nil
	}
	return false, nil
}

// GetPlaylistTracks returns the member tracks ordered by position.
func (r *memoryPlaylistRepository) GetPlaylistTracks(playlistID string) ([]*model.Track, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.playlists[playlistID]; !ok {
		return nil, ErrPlaylistNotFound
	}

	rows := make([]*model.PlaylistTrack, 0)
	for _, pt := range r.s.playlistTracks {
		if pt.PlaylistID == playlistID {
			rows = append(rows, pt)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	tracks := make([]*model.Track, 0, len(rows))
	for _, pt := range rows {
		if t, ok := r.s.tracks[pt.TrackID]; ok {
			out := *t
			tracks = append(tracks, &out)
		}
	}
	return tracks, nil
}

// repackPositions closes the gap left at removedPos so member positions stay
// contiguous. Caller must hold the write lock.
func repackPositions(s *MemoryStore, playlistID string, removedPos int) {
	for _, pt := range s.playlistTracks {
		if pt.PlaylistID == playlistID && pt.Position > removedPos {
			pt.Position--
		}
	}
}
