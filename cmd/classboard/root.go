package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"classboard/internal/api"
	"classboard/internal/applog"
	"classboard/internal/config"
	"classboard/internal/storage"
	"classboard/internal/ui"
)

var (
	cfgFile  string
	endpoint string
	timeout  time.Duration
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "classboard",
	Short: "Class schedule, subjects and notices in your terminal",
	Long: `classboard fetches the subject list, weekly schedule and info notice
from a JSON endpoint once at startup and shows them in a terminal dashboard
with a live clock, a dark/light theme and homework/link dialogs.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog.Close()

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		if err := ui.Run(store, cfg, newClient(cfg)); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default $CLASSBOARD_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "override the API endpoint from the config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "override the request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// setup loads the config, applies flag overrides and starts the file logger.
func setup() (config.Config, io.Closer, error) {
	path := cfgFile
	if path == "" {
		path = config.ResolveConfigPath()
	}
	firstLaunch := false
	if _, err := os.Stat(path); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if timeout > 0 {
		cfg.Timeout = timeout.String()
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	closer, err := applog.Init(cfg.LogPath, level)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to open log: %w", err)
	}
	log := applog.WithComponent("main")
	log.Info("config loaded", slog.String("path", path), slog.Bool("first_launch", firstLaunch))
	if firstLaunch {
		fmt.Fprintf(os.Stderr, "wrote default config to %s\n", path)
	}
	return cfg, closer, nil
}

// location resolves the configured timezone, logging and falling back to
// local time when it is invalid.
func location(cfg config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		applog.WithComponent("main").Warn("bad timezone, using local", slog.Any("err", err))
	}
	return loc
}

func newClient(cfg config.Config) *api.Client {
	return api.New(cfg.Endpoint, cfg.TimeoutDuration(), api.WithLogger(applog.WithComponent("loader")))
}
