package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/duskhall/render"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "duskrender",
	Short: "GPU compute renderer for the first-person view",
	Long: `duskrender drives the compute kernel that shades the game's
first-person view. It can render frame sequences to disk, report the
selected GPU adapter and translate device status codes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch logLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		render.SetLogger(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
}
