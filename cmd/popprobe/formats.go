package main

import (
	"fmt"
	"strings"

	"github.com/popprobe/population-simulator/internal/output"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			aliases := output.AvailableFormatAliases()
			for i, alias := range aliases {
				aliases[i] = alias + "=" + output.NormalizeFormatName(alias)
			}
			fmt.Fprintf(w, "Aliases: %s\n", strings.Join(aliases, ", "))
		},
	}
}
