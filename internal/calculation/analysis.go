package calculation

import (
	"github.com/popprobe/population-simulator/internal/domain"
)

// Summarize derives headline figures from a run's records.
func Summarize(records []domain.ProjectionRecord) domain.ProjectionSummary {
	if len(records) == 0 {
		return domain.ProjectionSummary{}
	}
	first, last := records[0], records[len(records)-1]
	summary := domain.ProjectionSummary{
		StartYear:         first.Year,
		EndYear:           last.Year,
		InitialPopulation: first.TotalPopulation,
		FinalPopulation:   last.TotalPopulation,
		PeakPopulation:    first.TotalPopulation,
		PeakYear:          first.Year,
		FinalAgingRate:    last.AgingRate,
	}
	for _, r := range records {
		// Earliest year wins when the peak repeats (the first two records often match).
		if r.TotalPopulation > summary.PeakPopulation {
			summary.PeakPopulation = r.TotalPopulation
			summary.PeakYear = r.Year
		}
		summary.TotalBirths += r.Births
		summary.TotalDeaths += r.Deaths
	}
	return summary
}

// CompareRuns reports the change in final population between two runs, in
// thousands and as a percentage of the baseline.
func CompareRuns(baseline, alternative *domain.ProjectionResult) (delta, pct float64) {
	delta = alternative.Summary.FinalPopulation - baseline.Summary.FinalPopulation
	pct = percentOf(delta, baseline.Summary.FinalPopulation)
	return delta, pct
}
