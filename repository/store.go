package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"soundlift/model"
)

// MemoryStore holds every entity collection behind a single lock. Keeping one
// lock across collections lets a play increment and its analytics event, or a
// membership insert and its playlist aggregates, commit in one critical
// section: readers never observe one half without the other.
type MemoryStore struct {
	mu             sync.RWMutex
	users          map[string]*model.User
	tracks         map[string]*model.Track
	playlists      map[string]*model.Playlist
	playlistTracks map[string]*model.PlaylistTrack
	analytics      map[string]*model.AnalyticsEvent

	now   func() time.Time
	newID func() string
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the store's time source. Used by tests that need
// deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithIDSource overrides the store's identifier generator.
func WithIDSource(newID func() string) Option {
	return func(s *MemoryStore) {
		s.newID = newID
	}
}

// NewMemoryStore creates an empty store. IDs are UUIDv4 strings and
// timestamps come from the wall clock unless overridden.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		users:          make(map[string]*model.User),
		tracks:         make(map[string]*model.Track),
		playlists:      make(map[string]*model.Playlist),
		playlistTracks: make(map[string]*model.PlaylistTrack),
		analytics:      make(map[string]*model.AnalyticsEvent),
		now:            time.Now,
		newID:          func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
