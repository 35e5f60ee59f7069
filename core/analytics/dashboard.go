package analytics

import (
	"fmt"
)

// DashboardStats is the summary record behind the dashboard overview.
type DashboardStats struct {
	TotalPlays     int64   `json:"totalPlays"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalTracks    int     `json:"totalTracks"`
	TotalPlaylists int     `json:"totalPlaylists"`
	Followers      int     `json:"followers"`
}

// DashboardStats aggregates the user's catalog into summary statistics.
//
// TotalPlays sums the denormalized per-track counters: plays are an all-time
// figure and the counter is kept consistent with the event log by RecordPlay.
// TotalRevenue sums events over the fixed 30-day window: revenue is
// inherently windowed and has no counter. Followers is a placeholder until a
// followers subsystem exists.
func (s *Service) DashboardStats(userID string) (*DashboardStats, error) {
	tracks, err := s.trackRepo.GetTracksByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks for user %s: %w", userID, err)
	}

	playlists, err := s.playlistRepo.GetPlaylistsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlists for user %s: %w", userID, err)
	}

	events, err := s.analytics.GetUserAnalytics(userID, DefaultWindowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics for user %s: %w", userID, err)
	}

	stats := &DashboardStats{
		TotalTracks:    len(tracks),
		TotalPlaylists: len(playlists),
		Followers:      0,
	}
	for _, t := range tracks {
		stats.TotalPlays += t.Plays
	}
	for _, e := range events {
		stats.TotalRevenue += e.Revenue
	}
	return stats, nil
}
