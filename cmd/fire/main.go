package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fire-ca/internal/config"
	"fire-ca/internal/fire"
	"fire-ca/internal/logging"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fire",
		Short: "Cellular fire spread on a grid",
		Long: `fire simulates fire spreading across a rectangular grid of cells.

Each cell carries a temperature that rises or falls with a velocity and
reignites from its hottest neighbour. Runs can be stepped headless, swept
across seeds, or watched in a terminal or window.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("preset", "", fmt.Sprintf("Base preset %v", fire.PresetNames()))
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringToString("set", nil, "Grid overrides as key=value (w, h, seed, min_fires, ...)")

	rootCmd.AddCommand(
		newRunCmd(),
		newParamsCmd(),
		newSweepCmd(),
		newTUICmd(),
		newViewCmd(),
	)
	return rootCmd
}

// loadConfig resolves the configuration from the global flags and builds
// the logger it asks for.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	preset, _ := cmd.Flags().GetString("preset")
	level, _ := cmd.Flags().GetString("log-level")
	overrides, _ := cmd.Flags().GetStringToString("set")

	cfg, err := config.Load(path, preset)
	if err != nil {
		return nil, nil, err
	}
	if len(overrides) > 0 {
		grid, err := fire.ApplyOverrides(cfg.Grid, overrides)
		if err != nil {
			return nil, nil, err
		}
		cfg.Grid = grid
	}
	if level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()), nil
}

func newSimulation(cfg *config.Config, logger *slog.Logger) (*fire.Simulation, error) {
	return fire.New(cfg.Grid, fire.WithLogger(logger), fire.WithName(cfg.Preset))
}
