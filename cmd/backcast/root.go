package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"backcast/internal/config"
	"backcast/internal/util"
)

const version = "0.1.0"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "backcast",
	Short: "Event-driven backtesting for trading strategies",
	Long: `backcast replays historical daily bars through trading strategies and
reports performance metrics. Bar data is gathered separately with the
backcast-data command.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the backcast version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("backcast %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config path from the flag or BACKCAST_CONFIG and
// installs the configured logger as the slog default.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("BACKCAST_CONFIG")
	}
	if path == "" {
		path = "config/backcast.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	return cfg, nil
}
