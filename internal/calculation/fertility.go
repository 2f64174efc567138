package calculation

import (
	"math"

	"github.com/popprobe/population-simulator/internal/domain"
)

const fertileSpan = float64(domain.MaxFertilityAge - domain.MinFertilityAge)

// FertilityWeights shapes births over ages 15..49 with a Beta density whose
// mean tracks meanAge and whose spread tracks stdDev (both in years). The
// weights sum to 1; TFR is applied by the caller.
func FertilityWeights(meanAge, stdDev float64) domain.FertilityDistribution {
	mu := clamp((meanAge-domain.MinFertilityAge)/fertileSpan, 0.02, 0.98)
	sigma := clamp(stdDev/fertileSpan, 0.02, 0.25)

	// A Beta distribution needs variance strictly below mu(1-mu).
	variance := sigma * sigma
	if variance >= mu*(1-mu) {
		variance = mu * (1 - mu) * 0.9
	}
	kappa := math.Max(2, mu*(1-mu)/variance-1)
	alpha := mu * kappa
	beta := (1 - mu) * kappa

	var dist domain.FertilityDistribution
	total := 0.0
	for i := range dist {
		x := clamp(float64(i)/fertileSpan, 0.001, 0.999)
		pdf := math.Pow(x, alpha-1) * math.Pow(1-x, beta-1)
		dist[i] = pdf
		total += pdf
	}
	for i := range dist {
		dist[i] /= total
	}
	return dist
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
