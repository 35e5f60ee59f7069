package cmd

import (
	"github.com/spf13/cobra"

	"soundlift/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Soundlift API server",
	Long:  `Start the HTTP server exposing the track, playlist and analytics API.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
