package main

import (
	"encoding/json"
	"fmt"
	"os"

	"fire-ca/internal/render"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step a simulation headless and report its statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ticks") {
				cfg.Run.Ticks, _ = cmd.Flags().GetInt("ticks")
			}
			if cmd.Flags().Changed("dt") {
				cfg.Run.DT, _ = cmd.Flags().GetFloat64("dt")
			}
			if cmd.Flags().Changed("scale") {
				cfg.View.Scale, _ = cmd.Flags().GetInt("scale")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			pngPath, _ := cmd.Flags().GetString("png")
			jsonOut, _ := cmd.Flags().GetBool("json")

			sim, err := newSimulation(cfg, logger)
			if err != nil {
				return err
			}
			if err := sim.Initialize(); err != nil {
				return err
			}

			ctx := cmd.Context()
			for tick := 1; tick <= cfg.Run.Ticks; tick++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := sim.Step(cfg.Run.DT); err != nil {
					return err
				}
				if cfg.Run.LogEvery > 0 && tick%cfg.Run.LogEvery == 0 {
					st := sim.Stats()
					logger.Debug("tick", "tick", st.Tick, "lit", st.Lit, "mean", st.Mean, "max", st.Max)
				}
			}

			st := sim.Stats()
			logger.Info("run finished",
				"ticks", st.Tick,
				"elapsed", st.Elapsed,
				"lit", st.Lit,
				"out", st.Out)

			if pngPath != "" {
				f, err := os.Create(pngPath)
				if err != nil {
					return fmt.Errorf("creating png: %w", err)
				}
				size := sim.Size()
				if err := render.EncodePNG(f, size.W, size.H, cfg.View.Scale, sim.Colors(nil)); err != nil {
					f.Close()
					return fmt.Errorf("writing png: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("writing png: %w", err)
				}
				logger.Info("frame written", "path", pngPath)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			fmt.Fprintf(out, "tick %d (%.2fs): %d/%d burning (%.1f%%), mean %.4f, max %.4f\n",
				st.Tick, st.Elapsed, st.Lit, st.Cells, 100*st.LitFraction(), st.Mean, st.Max)
			return nil
		},
	}
	cmd.Flags().Int("ticks", 0, "Number of ticks to run (default from config)")
	cmd.Flags().Float64("dt", 0, "Tick length in seconds (default from config)")
	cmd.Flags().Int("scale", 0, "Pixels per cell in the PNG (default from config)")
	cmd.Flags().String("png", "", "Write the final frame to this PNG file")
	cmd.Flags().Bool("json", false, "Print the final statistics as JSON")
	return cmd
}
