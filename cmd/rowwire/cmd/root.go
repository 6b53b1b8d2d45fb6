package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/valkyrdb/rowwire/pkg/blockstore"
	"github.com/valkyrdb/rowwire/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rowwire",
	Short: "rowwire - row block capture inspector",
	Long: `rowwire encodes rows into wire row blocks and inspects captured
blocks from the local capture store. Schemas and rows are described in
YAML files; blocks are stored in a pebble database keyed by ksuid.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		if storeDir, _ := cmd.Flags().GetString("store-dir"); storeDir != "" {
			cfg.StoreDir = storeDir
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}

		level, err := zerolog.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("bad log level %q: %w", cfg.Logging.Level, err)
		}
		logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

		store, err := blockstore.Open(blockstore.Config{
			Path:   cfg.StoreDir,
			Logger: &logger,
		})
		if err != nil {
			return fmt.Errorf("failed to open block store: %w", err)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), "store", store))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store, ok := cmd.Context().Value("store").(*blockstore.Store); ok {
			return store.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringP("store-dir", "d", "", "Block store directory (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides config)")
}

// storeFromContext pulls the block store opened by the root command.
func storeFromContext(cmd *cobra.Command) (*blockstore.Store, bool) {
	store, ok := cmd.Context().Value("store").(*blockstore.Store)
	return store, ok
}
