package output

import (
	"bytes"
	"encoding/csv"

	"github.com/popprobe/population-simulator/internal/domain"
)

var csvHeader = []string{
	"Year", "TotalPopulation", "Births", "Deaths", "Growth",
	"Age0_14", "Age15_64", "Age65Plus", "AgingRatePct", "DependencyRatioPct",
	"TFR", "LifeExpectancy", "MeanChildbearingAge",
}

// CSVExporter writes one row per simulated year. Population columns are in thousands.
type CSVExporter struct{}

func (c CSVExporter) Name() string { return "csv" }
func (c CSVExporter) Ext() string  { return "csv" }

func (c CSVExporter) Format(results *domain.ProjectionResult) ([]byte, error) {
	return writeRecordsCSV(results.Records)
}

// KeyYearsCSVExporter writes the first year, each decade year, and the final year.
type KeyYearsCSVExporter struct{}

func (c KeyYearsCSVExporter) Name() string { return "key-years-csv" }
func (c KeyYearsCSVExporter) Ext() string  { return "csv" }

func (c KeyYearsCSVExporter) Format(results *domain.ProjectionResult) ([]byte, error) {
	return writeRecordsCSV(domain.KeyYears(results.Records, results.Summary.EndYear))
}

func writeRecordsCSV(records []domain.ProjectionRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			intToString(r.Year),
			fixed(r.TotalPopulation, 3),
			fixed(r.Births, 3),
			fixed(r.Deaths, 3),
			fixed(r.Growth, 3),
			fixed(r.Age0To14, 3),
			fixed(r.Age15To64, 3),
			fixed(r.Age65Plus, 3),
			fixed(r.AgingRate, 2),
			fixed(r.DependencyRatio, 2),
			fixed(r.TFR, 3),
			fixed(r.LifeExpectancy, 2),
			fixed(r.MeanChildbearingAge, 2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
