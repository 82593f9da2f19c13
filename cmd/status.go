/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
	"github.com/cristianoliveira/notitray/internal/config"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show unread notification counts",
	Long: `Show unread notification counts.

USAGE:
    notitray status [OPTIONS]

OPTIONS:
    --format=<format>    Output format: compact, count-only, detailed, json (default: compact)
    --cached             Read from the local cache instead of the server
    -h, --help           Show this help

EXAMPLES:
    notitray status                      # One-line summary
    notitray status --format=count-only  # Just the unread count, for status bars
    notitray status --cached             # Last synced snapshot, works offline`,
	RunE: runStatus,
}

var (
	statusFormat string
	statusCached bool
)

func runStatus(cmd *cobra.Command, args []string) error {
	formatValue := app.DetermineStatusFormat(
		statusFormat,
		config.Get("status_format", ""),
		cmd.Flags().Changed("format"),
	)
	if err := app.ValidateStatusFormat(formatValue); err != nil {
		return err
	}

	var client app.StatusClient
	if statusCached {
		cached, cleanup, err := newCachedReadClient()
		if err != nil {
			return err
		}
		defer cleanup()
		client = cached
	} else {
		apiClient, err := newAPIClient()
		if err != nil {
			return err
		}
		client = apiClient
	}

	return app.NewStatusUseCase(client).Execute(cmd.Context(), formatValue, os.Stdout)
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "output format: compact, count-only, detailed, json")
	statusCmd.Flags().BoolVar(&statusCached, "cached", false, "read from the local cache")
	rootCmd.AddCommand(statusCmd)
}
