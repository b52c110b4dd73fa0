package main

import (
	"fmt"

	"fire-ca/internal/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Watch and poke a simulation in the terminal",
		Long: `tui draws the grid with two cells per character.

Left click ignites, right click extinguishes. Space pauses, n steps once,
r resets with the same seed, s reseeds, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
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

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing terminal: %w", err)
			}
			defer screen.Fini()

			return tui.New(screen, sim, cfg.Grid.Seed, cfg.View.TPS, logger).Run(cmd.Context())
		},
	}
	cmd.Flags().Int("tps", 0, "Ticks per second (default from config)")
	return cmd
}
