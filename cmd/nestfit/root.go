// Root command for the nestfit CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nestfit/nestfit/internal/paths"
	"github.com/nestfit/nestfit/pkg/nestfit"
)

// Exit codes: user errors (bad flags, bad input files) exit 1, system errors
// (storage unavailable, bind failure) exit 2.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
)

// config holds the loaded configuration. Set by PersistentPreRunE so all
// subcommands can use it.
var config *viper.Viper

var rootCmd = &cobra.Command{
	Use:     "nestfit",
	Short:   "Nestfit serves a furniture and rental listing catalog",
	Version: nestfit.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		config = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "sqlite data directory (default: $(CWD)/.nestfit-db)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > NESTFIT_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the sqlite data directory following the precedence:
// --data-dir flag > config.yaml data_dir > NESTFIT_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, config.GetString(cfgKeyDataDir))
}

// newLogger builds the process logger from the log_format and log_level
// config keys.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch config.GetString(cfgKeyLogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.GetString(cfgKeyLogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
