/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive notification tray",
	Long: `Open the interactive notification tray.

KEYS:
    j/k or ↑/↓    Navigate
    r             Mark selected as read
    R             Mark all as read
    d             Delete selected
    g             Refresh from server
    q             Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := newStore()
		if err != nil {
			return err
		}
		defer cleanup()

		return tui.Run(cmd.Context(), s, identity(), nil)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
