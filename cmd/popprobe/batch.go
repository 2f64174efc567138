package main

import (
	"github.com/popprobe/population-simulator/internal/calculation"
	"github.com/popprobe/population-simulator/internal/config"
	"github.com/popprobe/population-simulator/internal/domain"
	"github.com/popprobe/population-simulator/internal/output"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		endYear     int
		format      string
		lang        string
		concurrency int
		tfrScales   []float64
	)
	cmd := &cobra.Command{
		Use:   "batch <scenario>...",
		Short: "Project several scenarios, or fertility variants of one, concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			var cfgs []*domain.Configuration
			for _, path := range args {
				cfg, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("end-year") {
					cfg.EndYear = endYear
				}
				if len(tfrScales) == 0 {
					cfgs = append(cfgs, cfg)
					continue
				}
				variants, err := calculation.TFRVariants(cfg, tfrScales)
				if err != nil {
					return err
				}
				cfgs = append(cfgs, variants...)
			}

			semantics, err := calculation.ParseSemantics(a.settings.Semantics)
			if err != nil {
				return err
			}
			engine := calculation.NewProjectionEngine()
			engine.SetLogger(a.logger)
			engine.Options.Semantics = semantics
			runner := calculation.NewBatchRunner(engine)
			runner.Concurrency = concurrency

			// --end-year, then each scenario's end_year, then POPPROBE_END_YEAR
			result := runner.Run(cmd.Context(), cfgs, a.settings.EndYear)
			return output.WriteBatch(cmd.OutOrStdout(), result,
				pick(cmd, "format", format, a.settings.Format),
				pick(cmd, "lang", lang, a.settings.Lang))
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&endYear, "end-year", 0, "last simulated year (default: each scenario's end_year, then POPPROBE_END_YEAR)")
	flags.StringVarP(&format, "format", "f", "", "console or json")
	flags.StringVar(&lang, "lang", "", "language for console output: en or zh")
	flags.IntVar(&concurrency, "concurrency", calculation.DefaultBatchConcurrency, "projections to run at once")
	flags.Float64SliceVar(&tfrScales, "tfr-scale", nil, "run each scenario with its fertility series scaled by these factors")
	return cmd
}
