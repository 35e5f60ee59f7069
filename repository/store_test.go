package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundlift/model"
)

func newTestUser(t *testing.T, users UserRepository, username, email string) *model.User {
	t.Helper()
	u, err := users.CreateUser(&model.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return u
}

func TestCreateUserAssignsIdentity(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)

	u := newTestUser(t, users, "ada", "ada@example.com")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := users.GetUserByID(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ada", got.Username)

	byName, err := users.GetUserByUsername("ada")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := users.GetUserByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	newTestUser(t, users, "ada", "ada@example.com")

	_, err := users.CreateUser(&model.User{Username: "ada", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	_, err = users.CreateUser(&model.User{Username: "other", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestGetUserMissingReturnsNil(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)

	got, err := users.GetUserByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateTrackAppliesDefaults(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	track, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{
		Title:    "First Light",
		Duration: 180,
		FileURL:  "tracks/first-light.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TrackStatusProcessing, track.Status)
	assert.Equal(t, int64(0), track.Plays)
	assert.Equal(t, u.ID, track.UserID)
	assert.NotEmpty(t, track.ID)
}

func TestCreateTrackRequiresExistingUser(t *testing.T) {
	store := NewMemoryStore()
	tracks := NewTrackRepository(store)

	_, err := tracks.CreateTrack("ghost", &model.CreateTrackRequest{
		Title:    "x",
		Duration: 10,
		FileURL:  "x.mp3",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateTrackMergesPartialFields(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	track, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{
		Title:    "First Light",
		Duration: 180,
		FileURL:  "a.mp3",
		Genre:    "ambient",
	})
	require.NoError(t, err)

	status := model.TrackStatusPublished
	title := "First Light (Remaster)"
	updated, err := tracks.UpdateTrack(track.ID, &model.UpdateTrackRequest{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, model.TrackStatusPublished, updated.Status)
	// Untouched fields survive the merge.
	assert.Equal(t, 180, updated.Duration)
	assert.Equal(t, "ambient", updated.Genre)
}

func TestUpdateTrackMissingReturnsNil(t *testing.T) {
	store := NewMemoryStore()
	tracks := NewTrackRepository(store)

	title := "x"
	updated, err := tracks.UpdateTrack("nope", &model.UpdateTrackRequest{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDeleteTrackIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	track, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "x", Duration: 10, FileURL: "x.mp3"})
	require.NoError(t, err)

	removed, err := tracks.DeleteTrack(track.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = tracks.DeleteTrack(track.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRecordPlayBumpsCounterAndAppendsEvent(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	events := NewAnalyticsRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	track, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "x", Duration: 180, FileURL: "x.mp3"})
	require.NoError(t, err)

	const n = 3
	for i := 0; i < n; i++ {
		_, err := events.RecordPlay(track.ID)
		require.NoError(t, err)
	}

	got, err := tracks.GetTrackByID(track.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Plays)

	userEvents, err := events.GetUserAnalytics(u.ID, 30)
	require.NoError(t, err)
	require.Len(t, userEvents, n)
	for _, e := range userEvents {
		assert.Equal(t, 1, e.Plays)
		assert.Equal(t, 0.0, e.Revenue)
		assert.Equal(t, track.ID, e.TrackID)
		assert.Equal(t, u.ID, e.UserID)
	}
}

func TestRecordPlayMissingTrack(t *testing.T) {
	store := NewMemoryStore()
	events := NewAnalyticsRepository(store)

	_, err := events.RecordPlay("nope")
	assert.ErrorIs(t, err, ErrTrackNotFound)
}

func TestRecordRevenueAppendsEvent(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	events := NewAnalyticsRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	track, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "x", Duration: 180, FileURL: "x.mp3"})
	require.NoError(t, err)

	e, err := events.RecordRevenue(u.ID, track.ID, 9.99)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Plays)
	assert.Equal(t, 9.99, e.Revenue)

	// Revenue events never touch the play counter.
	got, err := tracks.GetTrackByID(track.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Plays)

	_, err = events.RecordRevenue("ghost", track.ID, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAnalyticsWindowFilter(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewMemoryStore(WithClock(clock))
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	events := NewAnalyticsRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	track, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "x", Duration: 180, FileURL: "x.mp3"})
	require.NoError(t, err)

	base := now
	ages := []int{1, 5, 10, 25, 45} // Days ago
	for _, age := range ages {
		now = base.AddDate(0, 0, -age)
		_, err := events.RecordPlay(track.ID)
		require.NoError(t, err)
	}
	now = base

	within7, err := events.GetUserAnalytics(u.ID, 7)
	require.NoError(t, err)
	assert.Len(t, within7, 2)

	within30, err := events.GetUserAnalytics(u.ID, 30)
	require.NoError(t, err)
	assert.Len(t, within30, 4)

	// The 7-day window is a subset of the 30-day window.
	ids30 := make(map[string]bool, len(within30))
	for _, e := range within30 {
		ids30[e.ID] = true
	}
	for _, e := range within7 {
		assert.True(t, ids30[e.ID])
	}
}

func TestCreatePlaylistAppliesDefaults(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	playlists := NewPlaylistRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	p, err := playlists.CreatePlaylist(u.ID, &model.CreatePlaylistRequest{Title: "Late Night"})
	require.NoError(t, err)
	assert.Equal(t, 0, p.TrackCount)
	assert.Equal(t, 0, p.TotalDuration)
	assert.Equal(t, int64(0), p.Plays)
	assert.True(t, p.IsPublic)

	private := false
	p2, err := playlists.CreatePlaylist(u.ID, &model.CreatePlaylistRequest{Title: "Drafts", IsPublic: &private})
	require.NoError(t, err)
	assert.False(t, p2.IsPublic)
}

func TestPlaylistMembershipMaintainsAggregates(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	playlists := NewPlaylistRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	t1, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "a", Duration: 100, FileURL: "a.mp3"})
	require.NoError(t, err)
	t2, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "b", Duration: 200, FileURL: "b.mp3"})
	require.NoError(t, err)

	p, err := playlists.CreatePlaylist(u.ID, &model.CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)

	r1, err := playlists.AddTrack(p.ID, t1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Position)
	r2, err := playlists.AddTrack(p.ID, t2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Position)

	got, err := playlists.GetPlaylistByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TrackCount)
	assert.Equal(t, 300, got.TotalDuration)

	_, err = playlists.AddTrack(p.ID, t1.ID)
	assert.ErrorIs(t, err, ErrDuplicatePlaylistTrack)

	ordered, err := playlists.GetPlaylistTracks(p.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, t1.ID, ordered[0].ID)
	assert.Equal(t, t2.ID, ordered[1].ID)

	removed, err := playlists.RemoveTrack(p.ID, t1.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err = playlists.GetPlaylistByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TrackCount)
	assert.Equal(t, 200, got.TotalDuration)

	// Remaining member is re-packed to the head.
	ordered, err = playlists.GetPlaylistTracks(p.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, t2.ID, ordered[0].ID)

	removed, err = playlists.RemoveTrack(p.ID, t1.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteTrackCascadesToPlaylists(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	playlists := NewPlaylistRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	t1, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "a", Duration: 100, FileURL: "a.mp3"})
	require.NoError(t, err)
	t2, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "b", Duration: 200, FileURL: "b.mp3"})
	require.NoError(t, err)

	p, err := playlists.CreatePlaylist(u.ID, &model.CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)
	_, err = playlists.AddTrack(p.ID, t1.ID)
	require.NoError(t, err)
	_, err = playlists.AddTrack(p.ID, t2.ID)
	require.NoError(t, err)

	removed, err := tracks.DeleteTrack(t1.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := playlists.GetPlaylistByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TrackCount)
	assert.Equal(t, 200, got.TotalDuration)

	ordered, err := playlists.GetPlaylistTracks(p.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, t2.ID, ordered[0].ID)
}

func TestDeletePlaylistRemovesMemberships(t *testing.T) {
	store := NewMemoryStore()
	users := NewUserRepository(store)
	tracks := NewTrackRepository(store)
	playlists := NewPlaylistRepository(store)
	u := newTestUser(t, users, "ada", "ada@example.com")

	t1, err := tracks.CreateTrack(u.ID, &model.CreateTrackRequest{Title: "a", Duration: 100, FileURL: "a.mp3"})
	require.NoError(t, err)
	p, err := playlists.CreatePlaylist(u.ID, &model.CreatePlaylistRequest{Title: "Mix"})
	require.NoError(t, err)
	_, err = playlists.AddTrack(p.ID, t1.ID)
	require.NoError(t, err)

	removed, err := playlists.DeletePlaylist(p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = playlists.DeletePlaylist(p.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Empty(t, store.playlistTracks)
}
