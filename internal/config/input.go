package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/popprobe/population-simulator/internal/calculation"
	"github.com/popprobe/population-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// Defaults for parameter series a scenario omits.
const (
	DefaultTFR             = 1.0
	DefaultLifeExpectancy  = 78.0
	DefaultChildbearingAge = 30.0
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	config, err := ip.Parse(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes a scenario document, fills defaults, and validates it.
// ext selects the decoder (".json" or anything else for YAML); a document
// starting with '{' is always treated as JSON.
func (ip *InputParser) Parse(data []byte, ext string) (*domain.Configuration, error) {
	var config domain.Configuration
	if isJSON(data, ext) {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	ip.ApplyDefaults(&config)
	return &config, nil
}

func isJSON(data []byte, ext string) bool {
	if strings.EqualFold(ext, ".json") {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ApplyDefaults fills optional parameters. Missing series become one control point at the start year.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	p := &config.Parameters
	if p.SexRatioAtBirth == 0 {
		p.SexRatioAtBirth = domain.DefaultSexRatioAtBirth
	}
	if p.FertilityStdDev == 0 {
		p.FertilityStdDev = domain.DefaultFertilityStdDev
	}
	if p.DynamicTFR == nil {
		p.DynamicTFR = constantSeries(config.Year, DefaultTFR)
	}
	if p.DynamicLifeExpectancy == nil {
		p.DynamicLifeExpectancy = constantSeries(config.Year, DefaultLifeExpectancy)
	}
	if p.DynamicChildbearingAge == nil {
		p.DynamicChildbearingAge = constantSeries(config.Year, DefaultChildbearingAge)
	}
}

func constantSeries(year int, v float64) *domain.DynamicSeries {
	return &domain.DynamicSeries{Values: domain.ParameterSeries{year: v}}
}

// ValidateConfiguration validates a decoded scenario before defaults are applied
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Year <= 0 {
		return fmt.Errorf("year is required")
	}
	if strings.TrimSpace(config.PopulationUnit) == "" {
		return fmt.Errorf("population_unit is required")
	}
	if err := ip.validateAgeGroups(config.PopulationByAgeGroup); err != nil {
		return fmt.Errorf("population_by_age_group: %w", err)
	}
	if err := ip.validateParameters(&config.Parameters); err != nil {
		return fmt.Errorf("parameters: %w", err)
	}
	return nil
}

// validateAgeGroups rejects negative counts and bands given in both spellings.
// Unknown labels are left for the engine to ignore.
func (ip *InputParser) validateAgeGroups(groups map[string]float64) error {
	if len(groups) == 0 {
		return fmt.Errorf("at least one age group is required")
	}
	seen := make(map[int]string, len(groups))
	for label, count := range groups {
		if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 {
			return fmt.Errorf("%q must be a non-negative number, got %v", label, count)
		}
		band, ok := domain.LookupAgeBand(label)
		if !ok {
			continue
		}
		if other, dup := seen[band.Start]; dup {
			return fmt.Errorf("band %d-%d given twice (%q and %q)", band.Start, band.End, other, label)
		}
		seen[band.Start] = label
	}
	return nil
}

func (ip *InputParser) validateParameters(p *domain.Parameters) error {
	if p.SexRatioAtBirth < 0 || math.IsNaN(p.SexRatioAtBirth) || math.IsInf(p.SexRatioAtBirth, 0) {
		return fmt.Errorf("sex_ratio_at_birth must be positive")
	}
	if p.FertilityStdDev < 0 || math.IsNaN(p.FertilityStdDev) || math.IsInf(p.FertilityStdDev, 0) {
		return fmt.Errorf("fertility_std_dev must be positive")
	}
	if err := validateSeries("dynamic_tfr", p.DynamicTFR, false); err != nil {
		return err
	}
	if err := validateSeries("dynamic_life_expectancy", p.DynamicLifeExpectancy, true); err != nil {
		return err
	}
	if err := validateSeries("dynamic_childbearing_age", p.DynamicChildbearingAge, true); err != nil {
		return err
	}
	return nil
}

// validateSeries accepts an absent series (defaulted later) but not an empty one.
func validateSeries(name string, ds *domain.DynamicSeries, positive bool) error {
	if ds == nil {
		return nil
	}
	if len(ds.Values) == 0 {
		return fmt.Errorf("%s.values: %w", name, calculation.ErrEmptySeries)
	}
	for year, v := range ds.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (positive && v == 0) {
			return fmt.Errorf("%s.values[%d] out of range: %v", name, year, v)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example scenario
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Name:   "Example",
		Source: "illustrative figures",
		Year:   2024,
		PopulationByAgeGroup: map[string]float64{
			"0-4岁": 3950, "5-9岁": 4100, "10-14岁": 4050, "15-19岁": 4000,
			"20-24岁": 4150, "25-29岁": 4400, "30-34岁": 4600, "35-39岁": 4500,
			"40-44岁": 4250, "45-49岁": 4100, "50-54岁": 4200, "55-59岁": 4150,
			"60-64岁": 3950, "65-69岁": 3500, "70-74岁": 2900, "75-79岁": 2100,
			"80-84岁": 1400, "85-89岁": 800, "90-94岁": 330, "95岁以上": 90,
		},
		PopulationUnit: "千人",
		Parameters: domain.Parameters{
			SexRatioAtBirth: domain.DefaultSexRatioAtBirth,
			FertilityStdDev: domain.DefaultFertilityStdDev,
			DynamicTFR: &domain.DynamicSeries{
				Description: "total fertility rate",
				Values:      domain.ParameterSeries{2024: 1.6, 2040: 1.5, 2060: 1.55},
			},
			DynamicLifeExpectancy: &domain.DynamicSeries{
				Description: "life expectancy at birth",
				Values:      domain.ParameterSeries{2024: 79, 2050: 83, 2100: 87},
			},
			DynamicChildbearingAge: &domain.DynamicSeries{
				Description: "mean age of mothers at birth",
				Values:      domain.ParameterSeries{2024: 30.5, 2050: 32},
			},
		},
	}
}

// SaveConfiguration writes a scenario as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
