// Package analytics implements play tracking, revenue recording and the
// aggregations behind the artist dashboard.
package analytics

import (
	"errors"
	"fmt"

	"soundlift/logger"
	"soundlift/model"
	"soundlift/repository"
)

// DefaultWindowDays is the recency window applied when a caller does not ask
// for a specific one. The dashboard always uses this window for revenue.
const DefaultWindowDays = 30

var (
	// ErrInvalidWindow is returned for a non-positive window length.
	ErrInvalidWindow = errors.New("window must be a positive number of days")
	// ErrInvalidAmount is returned for a negative revenue amount.
	ErrInvalidAmount = errors.New("revenue amount cannot be negative")
)

// Service coordinates the analytics data flow: mutations (plays, revenue)
// write through to the store, queries and the dashboard read from it. It is
// stateless; every dashboard call recomputes from current store state.
type Service struct {
	trackRepo    repository.TrackRepository
	playlistRepo repository.PlaylistRepository
	analytics    repository.AnalyticsRepository
}

// NewService creates an analytics Service over the given repositories.
func NewService(
	trackRepo repository.TrackRepository,
	playlistRepo repository.PlaylistRepository,
	analytics repository.AnalyticsRepository,
) *Service {
	return &Service{
		trackRepo:    trackRepo,
		playlistRepo: playlistRepo,
		analytics:    analytics,
	}
}

// RecordPlay records one play against the track: the counter increment and
// the analytics event commit together. Unknown tracks report
// repository.ErrTrackNotFound rather than succeeding silently.
func (s *Service) RecordPlay(trackID string) error {
	event, err := s.analytics.RecordPlay(trackID)
	if err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			return err
		}
		return fmt.Errorf("failed to record play for track %s: %w", trackID, err)
	}

	logger.Debug("play recorded",
		logger.String("trackId", trackID),
		logger.String("userId", event.UserID))
	return nil
}

// RecordRevenue appends a revenue event for the user/track pair. Amount must
// be non-negative. Ownership of the track is not checked here.
func (s *Service) RecordRevenue(userID, trackID string, amount float64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	if _, err := s.analytics.RecordRevenue(userID, trackID, amount); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to record revenue for user %s: %w", userID, err)
	}

	logger.Debug("revenue recorded",
		logger.String("userId", userID),
		logger.String("trackId", trackID),
		logger.Float64("amount", amount))
	return nil
}

// EventsWithin returns the user's analytics events dated within the last
// `days` days. Zero or negative windows are rejected.
func (s *Service) EventsWithin(userID string, days int) ([]*model.AnalyticsEvent, error) {
	if days <= 0 {
		return nil, ErrInvalidWindow
	}
	events, err := s.analytics.GetUserAnalytics(userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics for user %s: %w", userID, err)
	}
	return events, nil
}
