package main

import (
	"fmt"

	"github.com/popprobe/population-simulator/internal/config"
	"github.com/spf13/cobra"
)

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [path]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(cfg, path); err != nil {
				return fmt.Errorf("write example: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example scenario written to %s\n", path)
			return nil
		},
	}
}
