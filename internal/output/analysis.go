package output

import (
	"bytes"
	"fmt"

	"github.com/popprobe/population-simulator/internal/domain"
	shopspring "github.com/shopspring/decimal"
)

// Comparison describes how an alternative run differs from a baseline at the end year.
type Comparison struct {
	Baseline         string
	Alternative      string
	FinalDelta       float64 // thousands
	PercentageChange float64
}

// Describe renders the comparison as a single localized line.
func (c Comparison) Describe(lang string) string {
	tag := ResolveLanguage(lang)
	sign := "+"
	if c.FinalDelta < 0 {
		sign = "-"
	}
	amount := FormatPopulation(abs(c.FinalDelta), tag)
	if isChinese(tag) {
		return fmt.Sprintf("%s 相对 %s: 期末人口 %s%s (%s)", c.Alternative, c.Baseline, sign, amount, signedPercent(c.PercentageChange))
	}
	return fmt.Sprintf("%s vs %s: final population %s%s (%s)", c.Alternative, c.Baseline, sign, amount, signedPercent(c.PercentageChange))
}

// WriteComparison appends a comparison line to formatted output.
func WriteComparison(out []byte, c Comparison, lang string) []byte {
	var buf bytes.Buffer
	buf.Write(out)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, c.Describe(lang))
	return buf.Bytes()
}

// NewComparison labels two results for display.
func NewComparison(baseline, alternative *domain.ProjectionResult, delta, pct float64) Comparison {
	return Comparison{
		Baseline:         baseline.Semantics,
		Alternative:      alternative.Semantics,
		FinalDelta:       delta,
		PercentageChange: pct,
	}
}

func signedPercent(pct float64) string {
	d := shopspring.NewFromFloat(pct)
	if d.IsNegative() {
		return FormatPercentage(pct)
	}
	return "+" + FormatPercentage(pct)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
