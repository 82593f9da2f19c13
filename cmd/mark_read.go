/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
)

// markReadCmd represents the mark-read command
var markReadCmd = &cobra.Command{
	Use:   "mark-read ID...",
	Short: "Mark notifications as read",
	Long: `Mark one or more notifications as read by ID.
The server confirms each one before it counts as read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return app.NewMarkReadUseCase(client).Execute(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(markReadCmd)
}
