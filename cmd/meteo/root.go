package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/meteo/internal/app"
	"github.com/MrSnakeDoc/meteo/internal/config"
	"github.com/MrSnakeDoc/meteo/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "meteo",
	Short: "Weather widget backend for OpenWeatherMap",
	Long: `meteo serves current conditions, daily summaries and a synthesized hourly
forecast from OpenWeatherMap, and keeps a list of saved cities in Redis,
SQLite or memory. Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Red.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("meteo failed to start: %w", err)
	}
	return a.Run()
}

// openBookmarks connects the configured backend for the offline commands.
func openBookmarks(ctx context.Context) (*app.Storage, logger.Logger, error) {
	cfg := config.Load()
	log := logger.New("warn", true)
	storage, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return storage, log, nil
}
