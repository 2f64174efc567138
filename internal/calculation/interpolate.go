package calculation

import (
	"fmt"

	"github.com/popprobe/population-simulator/internal/domain"
)

// Interpolator answers piecewise-linear lookups over a sparse year series,
// clamped to the first and last control values.
type Interpolator struct {
	years  []int
	values []float64
}

// NewInterpolator prepares a series for repeated lookups.
func NewInterpolator(series domain.ParameterSeries) (*Interpolator, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	years := series.Years()
	values := make([]float64, len(years))
	for i, y := range years {
		values[i] = series[y]
	}
	return &Interpolator{years: years, values: values}, nil
}

// At returns the interpolated value for year.
func (ip *Interpolator) At(year int) float64 {
	last := len(ip.years) - 1
	if year <= ip.years[0] {
		return ip.values[0]
	}
	if year >= ip.years[last] {
		return ip.values[last]
	}
	for i := 0; i < last; i++ {
		y0, y1 := ip.years[i], ip.years[i+1]
		if year >= y0 && year <= y1 {
			v0, v1 := ip.values[i], ip.values[i+1]
			return v0 + (v1-v0)*float64(year-y0)/float64(y1-y0)
		}
	}
	return ip.values[0]
}

// Interpolate is a one-shot lookup for callers that query a series once.
func Interpolate(series domain.ParameterSeries, year int) (float64, error) {
	ip, err := NewInterpolator(series)
	if err != nil {
		return 0, fmt.Errorf("interpolate %d: %w", year, err)
	}
	return ip.At(year), nil
}
