package repository

import (
	"soundlift/model"
)

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	GetTrackByID(id string) (*model.Track, error)
	GetTracksByUser(userID string) ([]*model.Track, error)
	CreateTrack(userID string, req *model.CreateTrackRequest) (*model.Track, error)
	UpdateTrack(id string, req *model.UpdateTrackRequest) (*model.Track, error)
	DeleteTrack(id string) (bool, error)
}

// memoryTrackRepository implements TrackRepository over a MemoryStore.
type memoryTrackRepository struct {
	s *MemoryStore
}

// NewTrackRepository creates a TrackRepository backed by the given store.
func NewTrackRepository(s *MemoryStore) TrackRepository {
	return &memoryTrackRepository{s: s}
}

// GetTrackByID retrieves a track by ID. Returns (nil, nil) when absent.
func (r *memoryTrackRepository) GetTrackByID(id string) (*model.Track, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tracks[id]
	if !ok {
		return nil, nil
	}
	out := *t
	return &out, nil
}

// GetTracksByUser returns all tracks owned by the user, unordered.
func (r *memoryTrackRepository) GetTracksByUser(userID string) ([]*model.Track, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tracks := make([]*model.Track, 0)
	for _, t := range r.s.tracks {
		if t.UserID == userID {
			out := *t
			tracks = append(tracks, &out)
		}
	}
	return tracks, nil
}

// CreateTrack adds a new track owned by userID. Status defaults to
// "processing" and the play counter starts at zero. The owning user must
// exist.
func (r *memoryTrackRepository) CreateTrack(userID string, req *model.CreateTrackRequest) (*model.Track, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}

	status := req.Status
	if status == "" {
		status = model.TrackStatusProcessing
	}

	track := &model.Track{
		ID:         r.s.newID(),
		UserID:     userID,
		Title:      req.Title,
		Duration:   req.Duration,
		FileURL:    req.FileURL,
		ArtworkURL: req.ArtworkURL,
		Genre:      req.Genre,
		Status:     status,
		Plays:      0,
		CreatedAt:  r.s.now(),
	}
	r.s.tracks[track.ID] = track

	out := *track
	return &out, nil
}

// UpdateTrack shallow-merges the provided fields over the stored track.
// Returns (nil, nil) when the ID is unknown.
func (r *memoryTrackRepository) UpdateTrack(id string, req *model.UpdateTrackRequest) (*model.Track, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tracks[id]
	if !ok {
		return nil, nil
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Duration != nil {
		t.Duration = *req.Duration
	}
	if req.FileURL != nil {
		t.FileURL = *req.FileURL
	}
	if req.ArtworkURL != nil {
		t.ArtworkURL = *req.ArtworkURL
	}
	if req.Genre != nil {
		t.Genre = *req.Genre
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	out := *t
	return &out, nil
}

// DeleteTrack removes a track and its playlist memberships, keeping playlist
// aggregates in sync. Returns false when no track existed.
func (r *memoryTrackRepository) DeleteTrack(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tracks[id]
	if !ok {
		return false, nil
	}

	for ptID, pt := range r.s.playlistTracks {
		if pt.TrackID != id {
			continue
		}
		if p, ok := r.s.playlists[pt.PlaylistID]; ok {
			p.TrackCount--
			p.TotalDuration -= t.Duration
			repackPositions(r.s, pt.PlaylistID, pt.Position)
		}
		delete(r.s.playlistTracks, ptID)
	}

	delete(r.s.tracks, id)
	return true, nil
}
