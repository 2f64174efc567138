package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/popprobe/population-simulator/internal/calculation"
	"github.com/popprobe/population-simulator/internal/config"
	"github.com/popprobe/population-simulator/internal/domain"
	"github.com/popprobe/population-simulator/internal/output"
	"github.com/popprobe/population-simulator/internal/store/sqlite"
	"github.com/spf13/cobra"
)

type runFlags struct {
	endYear    int
	format     string
	lang       string
	out        string
	dbPath     string
	semantics  string
	allYears   bool
	compareLag bool
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml|scenario.json>",
		Short: "Project a scenario and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], f)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&f.endYear, "end-year", 0, "last simulated year (default: scenario end_year, then POPPROBE_END_YEAR)")
	flags.StringVarP(&f.format, "format", "f", "", "output format (see 'popprobe formats')")
	flags.StringVar(&f.lang, "lang", "", "language for console output: en or zh")
	flags.StringVarP(&f.out, "out", "o", "", "write output to this file instead of stdout")
	flags.StringVar(&f.dbPath, "db", "", "record the run in this SQLite history database")
	flags.StringVar(&f.semantics, "semantics", "", "cohort update timing: parity or lag-corrected")
	flags.BoolVar(&f.allYears, "all-years", false, "print every year in console output")
	flags.BoolVar(&f.compareLag, "compare-lag", false, "also run with lag-corrected semantics and report the difference")
	return cmd
}

// pick returns the flag value when the user set it, otherwise the env setting.
func pick(cmd *cobra.Command, name, flagValue, setting string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return setting
}

func resolveEndYear(cmd *cobra.Command, f *runFlags, cfg *domain.Configuration, settings config.Settings) int {
	switch {
	case cmd.Flags().Changed("end-year"):
		return f.endYear
	case cfg.EndYear > 0:
		return cfg.EndYear
	}
	return settings.EndYear
}

func (a *app) run(cmd *cobra.Command, path string, f *runFlags) error {
	ctx := cmd.Context()
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return err
	}

	semantics, err := calculation.ParseSemantics(pick(cmd, "semantics", f.semantics, a.settings.Semantics))
	if err != nil {
		return err
	}
	format := pick(cmd, "format", f.format, a.settings.Format)
	lang := pick(cmd, "lang", f.lang, a.settings.Lang)
	endYear := resolveEndYear(cmd, f, cfg, a.settings)

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(a.logger)
	engine.Options.Semantics = semantics

	result, err := engine.Run(ctx, cfg, endYear)
	if err != nil {
		return err
	}
	a.logger.Infof("projected %s %d..%d", cfg.Name, cfg.Year, endYear)

	var buf bytes.Buffer
	opts := output.ReportOptions{Lang: lang, AllYears: f.allYears}
	if err := output.WriteReport(&buf, result, format, opts); err != nil {
		return err
	}
	rendered := buf.Bytes()

	if f.compareLag {
		comparison, err := a.compareSemantics(cmd, cfg, endYear, result)
		if err != nil {
			return err
		}
		if output.NormalizeFormatName(format) == "console" {
			rendered = output.WriteComparison(rendered, comparison, lang)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), comparison.Describe(lang))
		}
	}

	if f.out != "" {
		if err := os.WriteFile(f.out, rendered, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		a.logger.Infof("wrote %s", f.out)
	} else if _, err := cmd.OutOrStdout().Write(rendered); err != nil {
		return err
	}

	dbPath := pick(cmd, "db", f.dbPath, a.settings.DBPath)
	if dbPath == "" {
		return nil
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.SaveRun(ctx, cfg.Name, cfg, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved run #%d to %s\n", id, dbPath)
	return nil
}

// compareSemantics reruns cfg with the other update timing and reports the
// change in final population relative to result.
func (a *app) compareSemantics(cmd *cobra.Command, cfg *domain.Configuration, endYear int, result *domain.ProjectionResult) (output.Comparison, error) {
	other := calculation.NewProjectionEngine()
	other.SetLogger(a.logger)
	other.Options.Semantics = calculation.LagCorrected
	if result.Semantics == calculation.LagCorrected.String() {
		other.Options.Semantics = calculation.ParitySemantics
	}
	alt, err := other.Run(cmd.Context(), cfg, endYear)
	if err != nil {
		return output.Comparison{}, err
	}
	delta, pct := calculation.CompareRuns(result, alt)
	return output.NewComparison(result, alt, delta, pct), nil
}
