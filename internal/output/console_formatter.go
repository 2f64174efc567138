package output

import (
	"bytes"
	"fmt"

	"github.com/popprobe/population-simulator/internal/domain"
	"golang.org/x/text/message"
)

type consoleLabels struct {
	title, semantics, start, end, peak, births, deaths, aging string
	header                                                    string
}

var (
	englishLabels = consoleLabels{
		title:     "POPULATION PROJECTION",
		semantics: "Semantics",
		start:     "Start",
		end:       "End",
		peak:      "Peak",
		births:    "Cumulative births",
		deaths:    "Cumulative deaths",
		aging:     "Final aging rate",
		header:    "Year  Total         Births(k)  Deaths(k)  Aging    Dependency",
	}
	chineseLabels = consoleLabels{
		title:     "人口预测",
		semantics: "口径",
		start:     "起始",
		end:       "结束",
		peak:      "峰值",
		births:    "累计出生",
		deaths:    "累计死亡",
		aging:     "期末老龄化率",
		header:    "年份  总人口        出生(千)   死亡(千)   老龄化   抚养比",
	}
)

// ConsoleFormatter renders a summary and a table of key years.
type ConsoleFormatter struct {
	// Lang is a language preference such as "en" or "zh-CN".
	Lang string
	// AllYears prints every simulated year instead of the key years.
	AllYears bool
}

func (c ConsoleFormatter) Name() string { return "console" }
func (c ConsoleFormatter) Ext() string  { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ProjectionResult) ([]byte, error) {
	tag := ResolveLanguage(c.Lang)
	labels := englishLabels
	if isChinese(tag) {
		labels = chineseLabels
	}
	p := message.NewPrinter(tag)
	s := results.Summary

	var buf bytes.Buffer
	title := labels.title
	if results.Name != "" {
		title += ": " + results.Name
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "%s: %s\n", labels.semantics, results.Semantics)
	if len(results.Records) == 0 {
		return buf.Bytes(), nil
	}
	fmt.Fprintf(&buf, "%s %d: %s\n", labels.start, s.StartYear, FormatPopulation(s.InitialPopulation, tag))
	fmt.Fprintf(&buf, "%s %d: %s\n", labels.end, s.EndYear, FormatPopulation(s.FinalPopulation, tag))
	fmt.Fprintf(&buf, "%s %d: %s\n", labels.peak, s.PeakYear, FormatPopulation(s.PeakPopulation, tag))
	fmt.Fprintf(&buf, "%s: %s\n", labels.births, FormatPopulation(s.TotalBirths, tag))
	fmt.Fprintf(&buf, "%s: %s\n", labels.deaths, FormatPopulation(s.TotalDeaths, tag))
	fmt.Fprintf(&buf, "%s: %s\n", labels.aging, FormatPercentage(s.FinalAgingRate))
	fmt.Fprintln(&buf)

	rows := results.Records
	if !c.AllYears {
		rows = domain.KeyYears(results.Records, s.EndYear)
	}
	fmt.Fprintln(&buf, labels.header)
	for _, r := range rows {
		fmt.Fprintf(&buf, "%-5d %-13s %-10s %-10s %-8s %s\n",
			r.Year,
			FormatPopulation(r.TotalPopulation, tag),
			p.Sprintf("%.0f", r.Births),
			p.Sprintf("%.0f", r.Deaths),
			FormatPercentage(r.AgingRate),
			FormatPercentage(r.DependencyRatio),
		)
	}
	return buf.Bytes(), nil
}
