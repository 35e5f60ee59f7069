package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soundlift/core/analytics"
	"soundlift/core/auth"
	"soundlift/model"
	"soundlift/repository"
)

// seedCmd loads demo data through the real store and services and prints the
// resulting dashboard summary. Useful for a quick end-to-end sanity check of
// the aggregation path without a running server.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data and print the dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := repository.NewMemoryStore()
		userRepo := repository.NewUserRepository(store)
		trackRepo := repository.NewTrackRepository(store)
		playlistRepo := repository.NewPlaylistRepository(store)
		analyticsRepo := repository.NewAnalyticsRepository(store)
		service := analytics.NewService(trackRepo, playlistRepo, analyticsRepo)

		hash, err := auth.HashPassword("demo-password")
		if err != nil {
			return err
		}
		user, err := userRepo.CreateUser(&model.User{
			Username:     "demo_artist",
			Email:        "demo@soundlift.local",
			PasswordHash: hash,
			ArtistName:   "Demo Artist",
		})
		if err != nil {
			return err
		}

		published := model.TrackStatusPublished
		trackSpecs := []model.CreateTrackRequest{
			{Title: "First Light", Duration: 214, FileURL: "tracks/first-light.mp3", Genre: "ambient", Status: published},
			{Title: "Night Drive", Duration: 187, FileURL: "tracks/night-drive.mp3", Genre: "synthwave", Status: published},
			{Title: "Unfinished Sketch", Duration: 95, FileURL: "tracks/sketch.mp3"},
		}
		tracks := make([]*model.Track, 0, len(trackSpecs))
		for i := range trackSpecs {
			t, err := trackRepo.CreateTrack(user.ID, &trackSpecs[i])
			if err != nil {
				return err
			}
			tracks = append(tracks, t)
		}

		playlist, err := playlistRepo.CreatePlaylist(user.ID, &model.CreatePlaylistRequest{
			Title:       "Late Night",
			Description: "Demo playlist",
		})
		if err != nil {
			return err
		}
		for _, t := range tracks[:2] {
			if _, err := playlistRepo.AddTrack(playlist.ID, t.ID); err != nil {
				return err
			}
		}

		for i, t := range tracks {
			for p := 0; p <= i*2; p++ {
				if err := service.RecordPlay(t.ID); err != nil {
					return err
				}
			}
		}
		if err := service.RecordRevenue(user.ID, tracks[0].ID, 12.50); err != nil {
			return err
		}
		if err := service.RecordRevenue(user.ID, tracks[1].ID, 4.75); err != nil {
			return err
		}

		stats, err := service.DashboardStats(user.ID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		fmt.Printf("Seeded user %s (%s)\n", user.Username, user.ID)
		return enc.Encode(stats)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
