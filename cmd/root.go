/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/notitray/internal/colors"
	"github.com/cristianoliveira/notitray/internal/config"
	"github.com/cristianoliveira/notitray/internal/logging"
	"github.com/cristianoliveira/notitray/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notitray",
	Short: "A notification tray for your terminal, synced with your server.",
	Long:  `A notification tray for your terminal, synced with your server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if err := logging.InitGlobal(); err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize logging: %v", err))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set version for use in help output
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Set custom help function that keeps commands in task order
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})
}

// outputWriter is the writer used by printHelpText. Can be changed for testing.
var outputWriter io.Writer

func printHelpText(cmd *cobra.Command) {
	w := outputWriter
	if w == nil {
		w = cmd.OutOrStdout()
	}

	commandOrder := []string{
		"status",
		"list",
		"mark-read",
		"mark-all-read",
		"delete",
		"send",
		"follow",
		"tui",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-20s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`notitray v%s

A notification tray for your terminal, synced with your server.

USAGE:
    notitray [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.Version, strings.Join(cmdLines, "\n"))
	fmt.Fprint(w, helpText)
}
