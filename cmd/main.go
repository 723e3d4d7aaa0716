package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0" // set at build time with -ldflags

var rootCmd = &cobra.Command{
	Use:   "tgauth",
	Short: "Telegram Mini-App authentication server",
	Long: `tgauth verifies Telegram Mini-App init data and keeps a record of the users it has seen.

Available commands:
  serve        Run the HTTP server (default)
  bootstrap    Run the Mini-App auth flow against a server and print the page
  verify       Check an init-data signature with the configured bot token

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tgauth v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
