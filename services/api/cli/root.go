// Package cli wires configuration, the dataset build and the HTTP server
// into the water-quality command.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/config"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/logging"
)

var (
	flagDataDir  string
	flagManifest string
	flagLogLevel string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "water-quality",
	Short:         "Water-quality sensor pipeline and query API",
	Long:          `Loads water-quality sensor logs, cleans statistical outliers and serves the result over a read-only HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if flagDataDir != "" {
			c.DataDir = flagDataDir
		}
		if flagManifest != "" {
			c.ManifestPath = flagManifest
		}
		if flagLogLevel != "" {
			c.LogLevel = flagLogLevel
		}
		cfg = c
		logger = logging.NewLogger(cfg.LogLevel, cfg.LogJSON)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the sensor files (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "YAML source manifest (overrides SOURCES_MANIFEST)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}
