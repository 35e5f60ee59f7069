package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundlift/core/analytics"
	"soundlift/model"
	"soundlift/repository"
)

type fixture struct {
	users     repository.UserRepository
	tracks    repository.TrackRepository
	playlists repository.PlaylistRepository
	service   *analytics.Service
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	tracks := repository.NewTrackRepository(store)
	playlists := repository.NewPlaylistRepository(store)
	events := repository.NewAnalyticsRepository(store)
	return &fixture{
		users:     repository.NewUserRepository(store),
		tracks:    tracks,
		playlists: playlists,
		service:   analytics.NewService(tracks, playlists, events),
	}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := f.users.CreateUser(&model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	return u
}

func (f *fixture) track(t *testing.T, userID, title string, duration int) *model.Track {
	t.Helper()
	tr, err := f.tracks.CreateTrack(userID, &model.CreateTrackRequest{
		Title:    title,
		Duration: duration,
		FileURL:  title + ".mp3",
	})
	require.NoError(t, err)
	return tr
}

func TestDashboardStatsAggregation(t *testing.T) {
	f := newFixture()
	u := f.user(t, "ada")

	t1 := f.track(t, u.ID, "one", 180)
	t2 := f.track(t, u.ID, "two", 200)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.service.RecordPlay(t1.ID))
	}
	require.NoError(t, f.service.RecordPlay(t2.ID))

	require.NoError(t, f.service.RecordRevenue(u.ID, t1.ID, 10.5))
	require.NoError(t, f.service.RecordRevenue(u.ID, t2.ID, 2.25))

	_, err := f.playlists.CreatePlaylist(u.ID, &model.CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)

	stats, err := f.service.DashboardStats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalPlays)
	assert.Equal(t, 12.75, stats.TotalRevenue)
	assert.Equal(t, 2, stats.TotalTracks)
	assert.Equal(t, 1, stats.TotalPlaylists)
	assert.Equal(t, 0, stats.Followers)
}

func TestDashboardStatsScopedToUser(t *testing.T) {
	f := newFixture()
	a := f.user(t, "ada")
	b := f.user(t, "ben")

	ta := f.track(t, a.ID, "a", 100)
	f.track(t, b.ID, "b", 100)
	require.NoError(t, f.service.RecordPlay(ta.ID))

	stats, err := f.service.DashboardStats(b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalPlays)
	assert.Equal(t, 1, stats.TotalTracks)
}

func TestDashboardStatsEmptyUser(t *testing.T) {
	f := newFixture()
	u := f.user(t, "ada")

	stats, err := f.service.DashboardStats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalPlays)
	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Equal(t, 0, stats.TotalTracks)
	assert.Equal(t, 0, stats.TotalPlaylists)
}

func TestRecordPlayUnknownTrack(t *testing.T) {
	f := newFixture()
	err := f.service.RecordPlay("nope")
	assert.ErrorIs(t, err, repository.ErrTrackNotFound)
}

func TestRecordRevenueRejectsNegativeAmount(t *testing.T) {
	f := newFixture()
	u := f.user(t, "ada")
	tr := f.track(t, u.ID, "one", 100)

	err := f.service.RecordRevenue(u.ID, tr.ID, -1)
	assert.ErrorIs(t, err, analytics.ErrInvalidAmount)
}

func TestEventsWithinRejectsInvalidWindow(t *testing.T) {
	f := newFixture()
	u := f.user(t, "ada")

	_, err := f.service.EventsWithin(u.ID, 0)
	assert.ErrorIs(t, err, analytics.ErrInvalidWindow)

	_, err = f.service.EventsWithin(u.ID, -5)
	assert.ErrorIs(t, err, analytics.ErrInvalidWindow)

	events, err := f.service.EventsWithin(u.ID, analytics.DefaultWindowDays)
	require.NoError(t, err)
	assert.Empty(t, events)
}
