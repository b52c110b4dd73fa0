//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Watch and poke a simulation in a window (requires -tags ebiten)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("the window viewer requires the ebiten build tag; rebuild with `go build -tags ebiten ./cmd/fire`")
		},
	}
}
