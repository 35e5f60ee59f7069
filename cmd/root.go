package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soundlift/server"
)

var rootCmd = &cobra.Command{
	Use:   "soundlift",
	Short: "Soundlift is a music distribution dashboard for independent artists.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
