/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
)

// markAllReadCmd represents the mark-all-read command
var markAllReadCmd = &cobra.Command{
	Use:   "mark-all-read",
	Short: "Mark every notification as read",
	Long: `Mark every notification as read in a single server call.
Asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		input := app.MarkAllReadInput{}
		if markAllYes {
			input.ConfirmAll = func() bool { return true }
		} else {
			input.ConfirmAll = func() bool {
				return confirmPrompt("Mark all notifications as read?")
			}
		}
		return app.NewMarkAllReadUseCase(client).Execute(cmd.Context(), input)
	},
}

var markAllYes bool

func init() {
	markAllReadCmd.Flags().BoolVarP(&markAllYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(markAllReadCmd)
}
