/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send TITLE [MESSAGE]",
	Short: "Create a notification on the server",
	Long: `Create a notification on the server.

USAGE:
    notitray send TITLE [MESSAGE] [OPTIONS]

OPTIONS:
    --kind=<kind>        Notification kind (default: info)
    --subject=<id>       Target identity (default: the authenticated one)
    --meta=<key=value>   Metadata entry, repeatable
    -h, --help           Show this help

EXAMPLES:
    notitray send "Build finished"
    notitray send "Deploy failed" "rollout halted at 40%" --kind=error
    notitray send "Review requested" --meta pr=1482 --meta repo=api`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		input := app.SendInput{
			Title:   args[0],
			Kind:    sendKind,
			Subject: sendSubject,
			Meta:    sendMeta,
		}
		if len(args) > 1 {
			input.Message = args[1]
		}
		return app.NewSendUseCase(client).Execute(cmd.Context(), input)
	},
}

var (
	sendKind    string
	sendSubject string
	sendMeta    []string
)

func init() {
	sendCmd.Flags().StringVar(&sendKind, "kind", "", "notification kind")
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "target identity")
	sendCmd.Flags().StringArrayVar(&sendMeta, "meta", nil, "metadata entry as key=value, repeatable")
	rootCmd.AddCommand(sendCmd)
}
