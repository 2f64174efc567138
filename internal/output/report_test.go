package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/popprobe/population-simulator/internal/domain"
	"github.com/popprobe/population-simulator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *domain.ProjectionResult {
	return &domain.ProjectionResult{
		Name:      "Report",
		Unit:      "thousand",
		Semantics: "parity-v1",
		Summary:   domain.ProjectionSummary{StartYear: 2024, EndYear: 2025, InitialPopulation: 141000, FinalPopulation: 140500, PeakPopulation: 141000, PeakYear: 2024},
		Records: []domain.ProjectionRecord{
			{Year: 2024, TotalPopulation: 141000},
			{Year: 2025, TotalPopulation: 140500},
		},
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteReport(&buf, sampleResult(), "table", output.ReportOptions{Lang: "zh"}))
	assert.Contains(t, buf.String(), "1.41亿")
}

func TestWriteReport_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := output.WriteReport(&buf, sampleResult(), "pdf", output.ReportOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "key-years-csv")
}

func TestGenerateReport_All(t *testing.T) {
	paths, err := output.GenerateReport(sampleResult(), "all", t.TempDir(), output.ReportOptions{})
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}

func TestComparisonDescribe(t *testing.T) {
	c := output.Comparison{Baseline: "parity-v1", Alternative: "lag-corrected-v2", FinalDelta: -1234, PercentageChange: -0.5}
	assert.Equal(t, "lag-corrected-v2 vs parity-v1: final population -123 10k (-0.50%)", c.Describe("en"))
	assert.Equal(t, "lag-corrected-v2 相对 parity-v1: 期末人口 -123万 (-0.50%)", c.Describe("zh"))

	up := output.Comparison{Baseline: "a", Alternative: "b", FinalDelta: 5, PercentageChange: 0.25}
	assert.Equal(t, "b vs a: final population +5k (+0.25%)", up.Describe(""))
}

func TestWriteComparison(t *testing.T) {
	out := output.WriteComparison([]byte("table\n"), output.Comparison{Baseline: "a", Alternative: "b"}, "en")
	assert.Equal(t, "table\n\nb vs a: final population +0k (+0.00%)\n", string(out))
}
