/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
	"github.com/cristianoliveira/notitray/internal/config"
)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Stream notifications as they arrive",
	Long: `Stream notifications to the terminal as they arrive.
With a realtime endpoint configured they arrive over the push channel,
otherwise the server is polled at the configured interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := newStore()
		if err != nil {
			return err
		}
		defer cleanup()

		interval := followInterval
		if !cmd.Flags().Changed("interval") {
			interval = config.GetInt("follow_interval", 30)
		}

		opts := app.FollowOptions{
			Identity: identity(),
			Interval: time.Duration(interval) * time.Second,
		}
		return app.NewFollowUseCase(s).Execute(cmd.Context(), opts)
	},
}

var followInterval int

func init() {
	followCmd.Flags().IntVar(&followInterval, "interval", 30, "refresh interval in seconds")
	rootCmd.AddCommand(followCmd)
}
