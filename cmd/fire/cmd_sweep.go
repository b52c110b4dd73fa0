package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fire-ca/internal/sweep"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run many seeds in parallel and rank how far each fire spread",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetInt("seeds")
			first, _ := cmd.Flags().GetInt64("first-seed")
			workers, _ := cmd.Flags().GetInt("workers")
			top, _ := cmd.Flags().GetInt("top")
			chartPath, _ := cmd.Flags().GetString("chart")
			jsonOut, _ := cmd.Flags().GetBool("json")
			if cmd.Flags().Changed("ticks") {
				cfg.Run.Ticks, _ = cmd.Flags().GetInt("ticks")
			}
			if count <= 0 {
				return fmt.Errorf("seeds must be positive, got %d", count)
			}
			if !cmd.Flags().Changed("first-seed") {
				first = cfg.Grid.Seed
			}

			logger.Info("sweep started", "seeds", count, "first_seed", first, "ticks", cfg.Run.Ticks, "workers", workers)
			start := time.Now()
			results, err := sweep.Run(cmd.Context(), sweep.Options{
				Base:    cfg.Grid,
				Seeds:   sweep.Seeds(first, count),
				Ticks:   cfg.Run.Ticks,
				DT:      cfg.Run.DT,
				Workers: workers,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			logger.Info("sweep finished", "results", len(results), "elapsed", time.Since(start).Round(time.Millisecond))

			if chartPath != "" {
				f, err := os.Create(chartPath)
				if err != nil {
					return fmt.Errorf("creating chart: %w", err)
				}
				if err := sweep.WriteChart(f, results, top); err != nil {
					f.Close()
					return fmt.Errorf("writing chart: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("writing chart: %w", err)
				}
				logger.Info("chart written", "path", chartPath)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if top > 0 && top < len(results) {
					results = results[:top]
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return sweep.WriteSummary(out, results, top)
		},
	}
	cmd.Flags().Int("seeds", 16, "Number of consecutive seeds to run")
	cmd.Flags().Int64("first-seed", 0, "First seed of the range (default: the configured seed)")
	cmd.Flags().Int("ticks", 0, "Ticks per run (default from config)")
	cmd.Flags().Int("workers", 0, "Parallel runs (0 = one per CPU)")
	cmd.Flags().Int("top", 5, "Number of results to print and chart (0 = all)")
	cmd.Flags().String("chart", "", "Write a PNG chart of burning cells over time")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
