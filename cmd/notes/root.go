package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notes-service/internal/config"
)

var flags config.Overrides

// rootCmd starts the notes API server.
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "HTTP API over plain-text notes stored as files",
	Long: `notes serves CRUD operations over plain-text notes.
Every note is stored as <name>.txt in the cache directory, which is created if missing.
Host, port and cache directory may also be set with NOTES_HOST, NOTES_PORT and NOTES_CACHE_DIR.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flags)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupLogging(cfg)
		return run(cmd.Context(), cfg)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flags.Host, "host", "h", "", "Server host")
	rootCmd.Flags().StringVarP(&flags.Port, "port", "p", "", "Server port")
	rootCmd.Flags().StringVarP(&flags.CacheDir, "cache", "c", "", "Path to cache directory")
}

// setupLogging configures structured logging with the configured level and format.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}
