package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/win/pkg/config"
	"github.com/artem13815/win/pkg/logger"
)

const app = "win"

var (
	v = config.New()

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "win is the backend of the WIN dating app",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("seed", "", "YAML catalog to load instead of the built-in demo data")

	// Flags win over the environment only when set.
	_ = v.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json"))
	_ = v.BindPFlag("SEED_FILE", rootCmd.PersistentFlags().Lookup("seed"))
}

// setup reads the configuration and builds the logger every command uses.
func setup() (config.Config, *zap.Logger, error) {
	cfg := config.FromViper(v)
	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return cfg, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}
