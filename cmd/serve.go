package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TG-Note-App/tgauth/internal/archive"
	"github.com/TG-Note-App/tgauth/internal/config"
	"github.com/TG-Note-App/tgauth/internal/initdata"
	"github.com/TG-Note-App/tgauth/internal/server"
	"github.com/TG-Note-App/tgauth/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	var rec archive.Recorder = archive.Nop{}
	if cfg.Minio.Enabled() {
		mr, err := archive.NewMinioRecorder(cfg.Minio.Archive())
		if err != nil {
			return fmt.Errorf("init archive: %w", err)
		}
		slog.Info("archiving auth events", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
		rec = mr
	}

	srv := server.New(server.Options{
		ListenAddr:     cfg.ListenAddr,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
	}, initdata.NewValidator(cfg.BotToken, cfg.AuthMaxAge), store.Users, store, rec)

	return srv.Run(ctx)
}
