package calculation

import (
	"math"

	"github.com/popprobe/population-simulator/internal/domain"
)

// Gompertz candidate grid, searched a-major then b in ascending order.
var (
	gompertzA = []float64{0.00001, 0.000015, 0.00002, 0.000025, 0.00003, 0.000035, 0.00004, 0.000045, 0.00005}
	gompertzB = []float64{0.070, 0.075, 0.080, 0.085, 0.090, 0.095, 0.100}
)

// GompertzFit is the hazard curve selected for a target life expectancy.
type GompertzFit struct {
	A, B float64
	// Implied is the life expectancy of the table built from A and B.
	Implied float64
}

// FitGompertz picks the grid pair whose implied life expectancy is closest to
// target. Ties keep the first pair found.
func FitGompertz(target float64) GompertzFit {
	best := GompertzFit{A: 0.00003, B: 0.085}
	bestDiff := math.Inf(1)
	for _, a := range gompertzA {
		for _, b := range gompertzB {
			table := gompertzTable(a, b)
			implied := LifeExpectancy(&table)
			if diff := math.Abs(implied - target); diff < bestDiff {
				bestDiff = diff
				best = GompertzFit{A: a, B: b, Implied: implied}
			}
		}
	}
	return best
}

// BuildMortalityTable returns the calibrated death probabilities for a life expectancy.
func BuildMortalityTable(lifeExpectancy float64) (domain.MortalityTable, GompertzFit) {
	fit := FitGompertz(lifeExpectancy)
	return gompertzTable(fit.A, fit.B), fit
}

func gompertzTable(a, b float64) domain.MortalityTable {
	var t domain.MortalityTable
	for age := range t {
		var rate float64
		switch {
		case age == 0:
			rate = 0.005
		case age <= 4:
			rate = 0.001
		case age <= 14:
			rate = 0.0003
		default:
			rate = a * math.Exp(b*float64(age))
		}
		t[age] = math.Min(rate, 1)
	}
	t[domain.MaxAge] = 1
	return t
}

// LifeExpectancy is the discrete life-table expectation at birth: the sum of
// survival to each age, starting from 1.
func LifeExpectancy(t *domain.MortalityTable) float64 {
	survival, years := 1.0, 0.0
	for _, q := range t {
		years += survival
		survival *= 1 - q
	}
	return years
}

// MortalityCache memoizes tables for one projection run, keyed by life
// expectancy rounded to the nearest half year. It is not safe for concurrent use.
type MortalityCache struct {
	tables map[float64]domain.MortalityTable
	logger Logger
	hits   int
}

// NewMortalityCache creates an empty cache. A nil logger is replaced with NopLogger.
func NewMortalityCache(logger Logger) *MortalityCache {
	if logger == nil {
		logger = NopLogger{}
	}
	return &MortalityCache{tables: make(map[float64]domain.MortalityTable), logger: logger}
}

// Table returns the mortality table for lifeExpectancy. On a miss the table is
// calibrated to the exact value and stored under its rounded key.
func (mc *MortalityCache) Table(lifeExpectancy float64) domain.MortalityTable {
	key := halfYearKey(lifeExpectancy)
	if t, ok := mc.tables[key]; ok {
		mc.hits++
		return t
	}
	t, fit := BuildMortalityTable(lifeExpectancy)
	mc.logger.Debugf("mortality: le=%.2f key=%.1f -> a=%.6f b=%.3f implied=%.2f", lifeExpectancy, key, fit.A, fit.B, fit.Implied)
	mc.tables[key] = t
	return t
}

// Len reports how many distinct tables were calibrated.
func (mc *MortalityCache) Len() int { return len(mc.tables) }

// Hits reports how many lookups were served from the cache.
func (mc *MortalityCache) Hits() int { return mc.hits }

// halfYearKey rounds to the nearest 0.5, halves rounding up.
func halfYearKey(v float64) float64 {
	return math.Floor(v*2+0.5) / 2
}
