package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/popprobe/population-simulator/internal/calculation"
)

// WriteBatch renders a batch summary as a table, or as JSON when format is "json".
func WriteBatch(w io.Writer, result *calculation.BatchResult, format, lang string) error {
	switch NormalizeFormatName(format) {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "console":
	default:
		return fmt.Errorf("%w: %q for batch output (use console or json)", ErrUnsupportedFormat, format)
	}

	tag := ResolveLanguage(lang)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tFINAL\tPEAK\tPEAK YEAR\tAGING")
	for _, o := range result.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", o.Label, o.Err)
			continue
		}
		s := o.Result.Summary
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", o.Label,
			FormatPopulation(s.FinalPopulation, tag),
			FormatPopulation(s.PeakPopulation, tag),
			s.PeakYear,
			FormatPercentage(s.FinalAgingRate))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(result.Outcomes) > result.Failed {
		p := result.FinalPopulations
		fmt.Fprintf(w, "\nFinal population P10 %s | P50 %s | P90 %s\n",
			FormatPopulation(p.P10, tag), FormatPopulation(p.P50, tag), FormatPopulation(p.P90, tag))
	}
	return nil
}
