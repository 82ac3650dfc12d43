package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/pageforge/internal/cli"
	"github.com/aretw0/pageforge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pageforge",
	Short: "Pageforge is a multi-page site builder engine",
	Long: `Pageforge edits multi-page sites made of nested content nodes, keeping
Header and Footer in sync across pages with bounded undo and redo.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("store", "", "Override the configured store backend (memory, file, redis)")
}

// runtime is what every command needs: the loaded config, a logger and an engine.
type runtime struct {
	cfg    config.Config
	logger *slog.Logger
	build  *cli.Build
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if backend, _ := cmd.Flags().GetString("store"); backend != "" {
		cfg.Store.Backend = backend
	}
	return cfg, cfg.Validate()
}

// setup loads configuration and builds the engine.
func setup(cmd *cobra.Command, jsonLogs bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newRuntime(cfg, jsonLogs, nil)
}

// newRuntime builds the engine for cfg. reg may be nil.
func newRuntime(cfg config.Config, jsonLogs bool, reg prometheus.Registerer) (*runtime, error) {
	logger, err := cli.NewLogger(cfg.LogLevel, jsonLogs)
	if err != nil {
		return nil, err
	}
	build, err := cli.BuildEngine(cfg, logger, reg)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, build: build}, nil
}
