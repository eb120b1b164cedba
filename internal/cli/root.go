// Package cli implements the moodmap command line.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moodmap/moodmap/internal/daemon"
	"github.com/moodmap/moodmap/internal/logging"
)

var (
	flagConfig string
	flagHome   string
)

var rootCmd = &cobra.Command{
	Use:   "moodmap",
	Short: "Map how you feel, place by place",
	Long: `moodmap keeps a journal of short notes pinned to map coordinates.
Each note is scored for sentiment and filed under one of seven moods,
from 🤩 Euphoric to 😢 Distressed. The journal can be driven from this
command line or served over HTTP with 'moodmap serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.toml (default: <home>/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "Data directory (default: $MOODMAP_HOME or ~/.moodmap)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig resolves the data dir and reads the config file inside it
// unless --config points elsewhere.
func loadConfig() (daemon.Config, string, error) {
	home := daemon.DataDir(flagHome)
	path := flagConfig
	if path == "" {
		path = filepath.Join(home, daemon.ConfigFileName)
	}
	cfg, err := daemon.LoadConfig(path)
	return cfg, home, err
}

// openDaemon assembles the service for a command. format overrides the
// configured log format; empty keeps it.
func openDaemon(cmd *cobra.Command, format string) (*daemon.Daemon, error) {
	cfg, home, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = cfg.Log.Format
	}
	log, err := logging.New(os.Stderr, cfg.Log.Level, format)
	if err != nil {
		return nil, err
	}
	return daemon.New(cmd.Context(), cfg, home, log)
}
