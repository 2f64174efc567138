package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MaxAge is the terminal single-year age bucket; everyone in it exits each year.
	MaxAge = 100
	// CohortSize is the number of single-year ages tracked (0..MaxAge).
	CohortSize = MaxAge + 1

	MinFertilityAge = 15
	MaxFertilityAge = 49
	// FertileAges is the number of single-year ages carrying fertility weight.
	FertileAges = MaxFertilityAge - MinFertilityAge + 1

	DefaultSexRatioAtBirth = 1.05
	DefaultFertilityStdDev = 5.5
)

// Configuration is a census snapshot plus the assumptions used to project it.
// Field names follow the preset JSON files.
type Configuration struct {
	Name                 string             `yaml:"name,omitempty" json:"name,omitempty"`
	Source               string             `yaml:"source,omitempty" json:"source,omitempty"`
	Year                 int                `yaml:"year" json:"year"`
	EndYear              int                `yaml:"end_year,omitempty" json:"end_year,omitempty"`
	PopulationByAgeGroup map[string]float64 `yaml:"population_by_age_group" json:"population_by_age_group"`
	PopulationUnit       string             `yaml:"population_unit" json:"population_unit"`
	Parameters           Parameters         `yaml:"parameters" json:"parameters"`
}

// Parameters holds the scalar and time-varying projection assumptions.
type Parameters struct {
	SexRatioAtBirth        float64        `yaml:"sex_ratio_at_birth,omitempty" json:"sex_ratio_at_birth,omitempty"`
	FertilityStdDev        float64        `yaml:"fertility_std_dev,omitempty" json:"fertility_std_dev,omitempty"`
	DynamicTFR             *DynamicSeries `yaml:"dynamic_tfr,omitempty" json:"dynamic_tfr,omitempty"`
	DynamicLifeExpectancy  *DynamicSeries `yaml:"dynamic_life_expectancy,omitempty" json:"dynamic_life_expectancy,omitempty"`
	DynamicChildbearingAge *DynamicSeries `yaml:"dynamic_childbearing_age,omitempty" json:"dynamic_childbearing_age,omitempty"`
}

// DynamicSeries wraps a ParameterSeries with optional descriptive text.
type DynamicSeries struct {
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Values      ParameterSeries `yaml:"values" json:"values"`
}

// Clone returns a deep copy so variants can be edited without touching the original.
func (c *Configuration) Clone() *Configuration {
	out := *c
	out.PopulationByAgeGroup = make(map[string]float64, len(c.PopulationByAgeGroup))
	for k, v := range c.PopulationByAgeGroup {
		out.PopulationByAgeGroup[k] = v
	}
	out.Parameters.DynamicTFR = c.Parameters.DynamicTFR.clone()
	out.Parameters.DynamicLifeExpectancy = c.Parameters.DynamicLifeExpectancy.clone()
	out.Parameters.DynamicChildbearingAge = c.Parameters.DynamicChildbearingAge.clone()
	return &out
}

func (ds *DynamicSeries) clone() *DynamicSeries {
	if ds == nil {
		return nil
	}
	out := &DynamicSeries{Description: ds.Description}
	if ds.Values != nil {
		out.Values = make(ParameterSeries, len(ds.Values))
		for k, v := range ds.Values {
			out.Values[k] = v
		}
	}
	return out
}

// SexRatio returns the configured sex ratio at birth or the default.
func (p Parameters) SexRatio() float64 {
	if p.SexRatioAtBirth > 0 {
		return p.SexRatioAtBirth
	}
	return DefaultSexRatioAtBirth
}

// FertilitySpread returns the configured fertility standard deviation or the default.
func (p Parameters) FertilitySpread() float64 {
	if p.FertilityStdDev > 0 {
		return p.FertilityStdDev
	}
	return DefaultFertilityStdDev
}

// TFR returns the dynamic TFR series, or nil when absent.
func (p Parameters) TFR() ParameterSeries { return p.DynamicTFR.series() }

// LifeExpectancy returns the dynamic life expectancy series, or nil when absent.
func (p Parameters) LifeExpectancy() ParameterSeries { return p.DynamicLifeExpectancy.series() }

// ChildbearingAge returns the dynamic mean childbearing age series, or nil when absent.
func (p Parameters) ChildbearingAge() ParameterSeries { return p.DynamicChildbearingAge.series() }

func (ds *DynamicSeries) series() ParameterSeries {
	if ds == nil {
		return nil
	}
	return ds.Values
}

// ParameterSeries is a sparse year -> value mapping consumed through interpolation.
type ParameterSeries map[int]float64

// Years returns the control years in ascending order.
func (ps ParameterSeries) Years() []int {
	years := make([]int, 0, len(ps))
	for y := range ps {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// UnmarshalYAML accepts quoted year keys ("2024": 1.1) as produced by JSON presets.
func (ps *ParameterSeries) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]float64
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(ParameterSeries, len(raw))
	for k, v := range raw {
		year, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return fmt.Errorf("invalid year key %q: %w", k, err)
		}
		out[year] = v
	}
	*ps = out
	return nil
}

// AgeBand is one of the fixed five-year census bands.
type AgeBand struct {
	Label string // label used by the preset files
	Alias string // ASCII spelling
	Start int
	End   int // inclusive
}

// Width returns the number of single-year ages covered by the band.
func (b AgeBand) Width() int { return b.End - b.Start + 1 }

// AgeBands lists the 20 census bands. The last band spans 95..100.
var AgeBands = []AgeBand{
	{"0-4岁", "0-4", 0, 4}, {"5-9岁", "5-9", 5, 9}, {"10-14岁", "10-14", 10, 14},
	{"15-19岁", "15-19", 15, 19}, {"20-24岁", "20-24", 20, 24}, {"25-29岁", "25-29", 25, 29},
	{"30-34岁", "30-34", 30, 34}, {"35-39岁", "35-39", 35, 39}, {"40-44岁", "40-44", 40, 44},
	{"45-49岁", "45-49", 45, 49}, {"50-54岁", "50-54", 50, 54}, {"55-59岁", "55-59", 55, 59},
	{"60-64岁", "60-64", 60, 64}, {"65-69岁", "65-69", 65, 69}, {"70-74岁", "70-74", 70, 74},
	{"75-79岁", "75-79", 75, 79}, {"80-84岁", "80-84", 80, 84}, {"85-89岁", "85-89", 85, 89},
	{"90-94岁", "90-94", 90, 94}, {"95岁以上", "95+", 95, MaxAge},
}

// LookupAgeBand resolves a band label in either spelling.
func LookupAgeBand(label string) (AgeBand, bool) {
	l := strings.TrimSpace(label)
	for _, b := range AgeBands {
		if l == b.Label || l == b.Alias {
			return b, true
		}
	}
	return AgeBand{}, false
}

// CohortVector holds the population at each single-year age in thousands.
type CohortVector [CohortSize]float64

// Total returns the sum over all ages.
func (c *CohortVector) Total() float64 { return c.Sum(0, CohortSize) }

// Sum returns the population over ages [from, to).
func (c *CohortVector) Sum(from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > CohortSize {
		to = CohortSize
	}
	total := 0.0
	for age := from; age < to; age++ {
		total += c[age]
	}
	return total
}

// FertilityDistribution holds normalized birth weights for ages MinFertilityAge..MaxFertilityAge.
type FertilityDistribution [FertileAges]float64

// At returns the weight for an age, or 0 outside the fertile range.
func (fd *FertilityDistribution) At(age int) float64 {
	if age < MinFertilityAge || age > MaxFertilityAge {
		return 0
	}
	return fd[age-MinFertilityAge]
}

// PeakAge returns the youngest age carrying the largest weight.
func (fd *FertilityDistribution) PeakAge() int {
	best := 0
	for i := 1; i < FertileAges; i++ {
		if fd[i] > fd[best] {
			best = i
		}
	}
	return MinFertilityAge + best
}

// MortalityTable holds annual death probabilities by single-year age.
type MortalityTable [CohortSize]float64
