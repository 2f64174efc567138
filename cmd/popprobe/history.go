package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/popprobe/population-simulator/internal/output"
	"github.com/popprobe/population-simulator/internal/store/sqlite"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var dbPath string
	openStore := func(cmd *cobra.Command) (*sqlite.Store, error) {
		path := pick(cmd, "db", dbPath, a.settings.DBPath)
		if path == "" {
			return nil, fmt.Errorf("no history database: pass --db or set POPPROBE_DB_PATH")
		}
		return sqlite.Open(path)
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with --db",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			runs, err := store.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			lang := output.ResolveLanguage(a.settings.Lang)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSEMANTICS\tYEARS\tFINAL\tSAVED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d-%d\t%s\t%s\n",
					r.ID, r.Name, r.Semantics, r.StartYear, r.EndYear,
					output.FormatPopulation(r.FinalPopulation, lang),
					r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database path")

	var format string
	var allYears bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			run, err := store.LoadRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			opts := output.ReportOptions{Lang: a.settings.Lang, AllYears: allYears}
			return output.WriteReport(cmd.OutOrStdout(), run.Result, pick(cmd, "format", format, a.settings.Format), opts)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "", "output format")
	show.Flags().BoolVar(&allYears, "all-years", false, "print every year in console output")
	cmd.AddCommand(show)
	return cmd
}
