/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete notifications",
	Long:  `Delete one or more notifications by ID. Deletion is permanent.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return app.NewDeleteUseCase(client).Execute(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
