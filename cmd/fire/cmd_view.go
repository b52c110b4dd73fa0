//go:build ebiten

package main

import (
	"errors"

	"fire-ca/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Watch and poke a simulation in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				cfg.View.Scale, _ = cmd.Flags().GetInt("scale")
			}
			if cmd.Flags().Changed("tps") {
				cfg.View.TPS, _ = cmd.Flags().GetInt("tps")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			sim, err := newSimulation(cfg, logger)
			if err != nil {
				return err
			}

			game := app.New(sim, cfg.View.Scale, cfg.Grid.Seed, cfg.View.TPS)
			size := sim.Size()

			ebiten.SetWindowTitle("fire - " + sim.Name())
			ebiten.SetTPS(cfg.View.TPS)
			ebiten.SetWindowSize(size.W*cfg.View.Scale+app.HUDWidth, size.H*cfg.View.Scale)

			if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int("scale", 0, "Pixels per cell (default from config)")
	cmd.Flags().Int("tps", 0, "Ticks per second (default from config)")
	return cmd
}
