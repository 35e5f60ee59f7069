package repository

import (
	"soundlift/model"
)

// AnalyticsRepository defines the interface for the append-only analytics
// event log and the play counter it feeds.
type AnalyticsRepository interface {
	// RecordPlay increments the track's play counter and appends a plays=1
	// event for the track's owner. Both effects commit atomically.
	RecordPlay(trackID string) (*model.AnalyticsEvent, error)
	// RecordRevenue appends a plays=0 event carrying the given amount.
	RecordRevenue(userID, trackID string, amount float64) (*model.AnalyticsEvent, error)
	// GetUserAnalytics returns the user's events dated within the last `days`
	// days, unordered.
	GetUserAnalytics(userID string, days int) ([]*model.AnalyticsEvent, error)
}

// memoryAnalyticsRepository implements AnalyticsRepository over a MemoryStore.
type memoryAnalyticsRepository struct {
	s *MemoryStore
}

// NewAnalyticsRepository creates an AnalyticsRepository backed by the given store.
func NewAnalyticsRepository(s *MemoryStore) AnalyticsRepository {
	return &memoryAnalyticsRepository{s: s}
}

// RecordPlay bumps the play counter and appends the matching event inside one
// critical section, so no reader can see the counter without the event.
func (r *memoryAnalyticsRepository) RecordPlay(trackID string) (*model.AnalyticsEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tracks[trackID]
	if !ok {
		return nil, ErrTrackNotFound
	}
	t.Plays++

	event := &model.AnalyticsEvent{
		ID:      r.s.newID(),
		UserID:  t.UserID,
		TrackID: trackID,
		Date:    r.s.now(),
		Plays:   1,
		Revenue: 0,
	}
	r.s.analytics[event.ID] = event

	out := *event
	return &out, nil
}

// RecordRevenue appends a revenue-bearing event for the user/track pair. The
// user must exist; whether the track belongs to the user is the caller's
// responsibility.
func (r *memoryAnalyticsRepository) RecordRevenue(userID, trackID string, amount float64) (*model.AnalyticsEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}

	event := &model.AnalyticsEvent{
		ID:      r.s.newID(),
		UserID:  userID,
		TrackID: trackID,
		Date:    r.s.now(),
		Plays:   0,
		Revenue: amount,
	}
	r.s.analytics[event.ID] = event

	out := *event
	return &out, nil
}

// GetUserAnalytics filters the full event set by user and recency window.
func (r *memoryAnalyticsRepository) GetUserAnalytics(userID string, days int) ([]*model.AnalyticsEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cutoff := r.s.now().AddDate(0, 0, -days)
	events := make([]*model.AnalyticsEvent, 0)
	for _, e := range r.s.analytics {
		if e.UserID == userID && !e.Date.Before(cutoff) {
			out := *e
			events = append(events, &out)
		}
	}
	return events, nil
}
