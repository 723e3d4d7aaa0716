package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TG-Note-App/tgauth/internal/bootstrap"
	"github.com/TG-Note-App/tgauth/internal/config"
	"github.com/TG-Note-App/tgauth/internal/view"
)

var bootstrapFlags struct {
	baseURL  string
	initData string
	out      string
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Run the Mini-App auth flow and print the resulting page",
	Long: `bootstrap plays the part of the Mini-App page: it takes init data (from --init-data
or the environment variable named by INIT_DATA_ENV), posts it to <base-url>/auth/telegram
and renders the user-info element into a static HTML page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		baseURL := cfg.AuthBaseURL
		if bootstrapFlags.baseURL != "" {
			baseURL = bootstrapFlags.baseURL
		}

		var host bootstrap.HostBridge = bootstrap.EnvHost{Key: cfg.InitDataEnv}
		if cmd.Flags().Changed("init-data") {
			host = bootstrap.StaticHost(bootstrapFlags.initData)
		}

		var slot view.Slot
		runErr := bootstrap.New(host, &slot, bootstrap.WithBaseURL(baseURL)).Run(cmd.Context())

		var buf bytes.Buffer
		if err := view.SnapshotPage(slot.Node()).Render(&buf); err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		if bootstrapFlags.out == "" || bootstrapFlags.out == "-" {
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
		} else {
			err = os.WriteFile(bootstrapFlags.out, buf.Bytes(), 0o644)
		}
		if err != nil {
			return err
		}

		// The page already shows the outcome; the exit code tells scripts.
		return runErr
	},
}

func init() {
	bootstrapCmd.Flags().StringVar(&bootstrapFlags.baseURL, "base-url", "", "auth server base URL (default AUTH_BASE_URL)")
	bootstrapCmd.Flags().StringVar(&bootstrapFlags.initData, "init-data", "", "raw init-data query string")
	bootstrapCmd.Flags().StringVarP(&bootstrapFlags.out, "out", "o", "-", "write the page to this file")
	rootCmd.AddCommand(bootstrapCmd)
}
