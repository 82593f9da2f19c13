/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/app"
	"github.com/cristianoliveira/notitray/internal/config"
	"github.com/cristianoliveira/notitray/internal/domain"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Long: `List notifications in a table.

USAGE:
    notitray list [OPTIONS]

OPTIONS:
    --unread             Only unread notifications
    --read               Only read notifications
    --kind=<kind>        Filter by kind (info, success, warning, error, task, user, system)
    --limit=<n>          Maximum rows to print (default: from config)
    --format=<format>    Output format: table, json (default: table)
    --cached             Read from the local cache instead of the server
    -h, --help           Show this help`,
	RunE: runList,
}

var (
	listUnread bool
	listRead   bool
	listKind   string
	listLimit  int
	listFormat string
	listCached bool
)

func runList(cmd *cobra.Command, args []string) error {
	if listUnread && listRead {
		return fmt.Errorf("list: cannot specify both --unread and --read")
	}

	readFilter := ""
	if listUnread {
		readFilter = domain.ReadFilterUnread
	}
	if listRead {
		readFilter = domain.ReadFilterRead
	}

	limit := listLimit
	if !cmd.Flags().Changed("limit") {
		limit = config.GetInt("list_limit", 50)
	}

	var client app.ListClient
	if listCached {
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

	opts := app.ListOptions{
		Kind:       listKind,
		ReadFilter: readFilter,
		Limit:      limit,
		Format:     listFormat,
	}
	return app.NewListUseCase(client).Execute(cmd.Context(), opts, os.Stdout)
}

func init() {
	listCmd.Flags().BoolVar(&listUnread, "unread", false, "only unread notifications")
	listCmd.Flags().BoolVar(&listRead, "read", false, "only read notifications")
	listCmd.Flags().StringVar(&listKind, "kind", "", "filter by kind")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum rows to print")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "output format: table, json")
	listCmd.Flags().BoolVar(&listCached, "cached", false, "read from the local cache")
	rootCmd.AddCommand(listCmd)
}
