package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the resolved simulation parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sim, err := newSimulation(cfg, logger)
			if err != nil {
				return err
			}
			snapshot := sim.Parameters()

			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}

			fmt.Fprintf(out, "preset %s\n", cfg.Preset)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, group := range snapshot.Groups {
				fmt.Fprintf(tw, "\n[%s]\n", group.Name)
				for _, p := range group.Params {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Key, p.Value, p.Label)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}
