package main

import (
	"github.com/popprobe/population-simulator/internal/calculation"
	"github.com/popprobe/population-simulator/internal/config"
	"github.com/spf13/cobra"
)

// app carries state shared by subcommands once the root has parsed env and flags.
type app struct {
	settings config.Settings
	logger   calculation.Logger
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{logger: calculation.NopLogger{}}

	root := &cobra.Command{
		Use:           "popprobe",
		Short:         "Cohort-component population projections",
		Long:          "popprobe projects a population year by year from an age-banded starting count\nand time-varying fertility, mortality and childbearing-age assumptions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			a.settings = settings
			level := settings.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = a.logLevel
			}
			threshold, err := parseLogLevel(level)
			if err != nil {
				return err
			}
			a.logger = newStderrLogger(cmd.ErrOrStderr(), threshold)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newRunCmd(a),
		newBatchCmd(a),
		newExampleCmd(),
		newFormatsCmd(),
		newHistoryCmd(a),
	)
	return root
}
