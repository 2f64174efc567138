package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/popprobe/population-simulator/internal/domain"
)

// Semantics selects when the cohort update takes effect.
type Semantics int

const (
	// ParitySemantics is the default: the cohort is first aged
	// when leaving the year after the start year, so the first two records share
	// the initial cohort.
	ParitySemantics Semantics = iota
	// LagCorrected ages the cohort after every year, including the start year.
	LagCorrected
)

func (s Semantics) String() string {
	if s == LagCorrected {
		return "lag-corrected-v2"
	}
	return "parity-v1"
}

// ParseSemantics maps a CLI name to a Semantics value.
func ParseSemantics(name string) (Semantics, error) {
	switch name {
	case "", "parity", "parity-v1":
		return ParitySemantics, nil
	case "lag-corrected", "lag-corrected-v2":
		return LagCorrected, nil
	}
	return ParitySemantics, fmt.Errorf("unknown semantics %q (want parity or lag-corrected)", name)
}

// MaxProjectionYears bounds how many years one run may simulate.
const MaxProjectionYears = 1000

// Options tune a projection run.
type Options struct {
	Semantics Semantics
}

// ProjectionEngine advances a single-year cohort vector one year at a time.
// It holds no per-run state; each call to Project owns its cohort and mortality cache.
type ProjectionEngine struct {
	Options Options
	Logger  Logger
}

// NewProjectionEngine creates an engine with parity semantics and a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// runInputs is a validated configuration ready for projection.
type runInputs struct {
	startYear     int
	cohort        domain.CohortVector
	unit          Unit
	femaleRatio   float64
	fertilityStd  float64
	tfr, le, mean *Interpolator
}

func (pe *ProjectionEngine) prepare(cfg *domain.Configuration, log Logger) (*runInputs, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}
	if cfg.Year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", ErrInvalidConfig, cfg.Year)
	}
	if len(cfg.PopulationByAgeGroup) == 0 {
		return nil, fmt.Errorf("%w: population_by_age_group is required", ErrInvalidConfig)
	}
	for label, count := range cfg.PopulationByAgeGroup {
		if !finite(count) || count < 0 {
			return nil, fmt.Errorf("%w: population_by_age_group[%q] must be a non-negative number, got %v", ErrInvalidConfig, label, count)
		}
	}
	in := &runInputs{
		startYear:    cfg.Year,
		femaleRatio:  1 / (1 + cfg.Parameters.SexRatio()),
		fertilityStd: cfg.Parameters.FertilitySpread(),
	}
	var err error
	if !finite(in.femaleRatio) || in.femaleRatio <= 0 || !finite(in.fertilityStd) {
		return nil, fmt.Errorf("%w: sex_ratio_at_birth and fertility_std_dev must be finite", ErrInvalidConfig)
	}
	if in.tfr, err = seriesInterpolator("dynamic_tfr", cfg.Parameters.TFR(), false); err != nil {
		return nil, err
	}
	if in.le, err = seriesInterpolator("dynamic_life_expectancy", cfg.Parameters.LifeExpectancy(), true); err != nil {
		return nil, err
	}
	if in.mean, err = seriesInterpolator("dynamic_childbearing_age", cfg.Parameters.ChildbearingAge(), true); err != nil {
		return nil, err
	}

	exp := ExpandAgeGroups(cfg.PopulationByAgeGroup, cfg.PopulationUnit)
	if exp.Unit == UnitUnknown {
		log.Warnf("unrecognized population unit %q; treating counts as thousands", cfg.PopulationUnit)
	}
	if len(exp.Duplicates) > 0 {
		return nil, fmt.Errorf("%w: age bands given under two spellings: %v", ErrInvalidConfig, exp.Duplicates)
	}
	for _, label := range exp.Ignored {
		log.Warnf("ignoring unknown age band %q", label)
	}
	in.cohort = exp.Cohort
	in.unit = exp.Unit
	return in, nil
}

// Project simulates every year from cfg.Year to endYear inclusive. An endYear
// before the start year yields no records. Cancellation is checked between
// years; on cancellation the records completed so far are returned with ctx.Err().
func (pe *ProjectionEngine) Project(ctx context.Context, cfg *domain.Configuration, endYear int) ([]domain.ProjectionRecord, error) {
	log := pe.logger()
	if cfg != nil {
		log = withPrefix(log, cfg.Name)
	}
	in, err := pe.prepare(cfg, log)
	if err != nil {
		return nil, err
	}
	if endYear < in.startYear {
		log.Infof("end year %d precedes start year %d; nothing to project", endYear, in.startYear)
		return []domain.ProjectionRecord{}, nil
	}
	// startYear is positive, so the difference cannot overflow.
	if endYear-in.startYear >= MaxProjectionYears {
		return nil, fmt.Errorf("%w: end year %d is more than %d years after %d", ErrInvalidConfig, endYear, MaxProjectionYears, in.startYear)
	}

	log.Debugf("projecting %d..%d (%s, unit=%s)", in.startYear, endYear, pe.Options.Semantics, in.unit)
	records := make([]domain.ProjectionRecord, 0, endYear-in.startYear+1)
	mortality := NewMortalityCache(log)
	population := in.cohort

	for year := in.startYear; year <= endYear; year++ {
		if err := ctx.Err(); err != nil {
			log.Warnf("projection cancelled at %d: %v", year, err)
			return records, err
		}

		tfr := in.tfr.At(year)
		le := in.le.At(year)
		meanAge := in.mean.At(year)

		total := population.Total()
		young := population.Sum(0, 15)
		working := population.Sum(15, 65)
		old := population.Sum(65, domain.CohortSize)

		weights := FertilityWeights(meanAge, in.fertilityStd)
		births := 0.0
		for age := domain.MinFertilityAge; age <= domain.MaxFertilityAge; age++ {
			births += population[age] * in.femaleRatio * tfr * weights.At(age)
		}

		rates := mortality.Table(le)
		var deathsByAge domain.CohortVector
		deaths := 0.0
		for age := range population {
			deathsByAge[age] = population[age] * rates[age]
			deaths += deathsByAge[age]
		}

		records = append(records, domain.ProjectionRecord{
			Year:                year,
			TotalPopulation:     total,
			Births:              births,
			Deaths:              deaths,
			Growth:              births - deaths,
			Age0To14:            young,
			Age15To64:           working,
			Age65Plus:           old,
			AgingRate:           percentOf(old, total),
			DependencyRatio:     percentOf(young+old, working),
			TFR:                 tfr,
			LifeExpectancy:      le,
			MeanChildbearingAge: meanAge,
		})

		if year > in.startYear || pe.Options.Semantics == LagCorrected {
			population = advance(&population, &deathsByAge, births)
		}
	}

	log.Debugf("calibrated %d mortality tables (%d cache hits)", mortality.Len(), mortality.Hits())
	return records, nil
}

// Run projects cfg and summarizes the outcome.
func (pe *ProjectionEngine) Run(ctx context.Context, cfg *domain.Configuration, endYear int) (*domain.ProjectionResult, error) {
	records, err := pe.Project(ctx, cfg, endYear)
	if err != nil {
		return nil, fmt.Errorf("projection failed: %w", err)
	}
	return &domain.ProjectionResult{
		Name:      cfg.Name,
		Unit:      "thousand",
		Semantics: pe.Options.Semantics.String(),
		Summary:   Summarize(records),
		Records:   records,
	}, nil
}

// seriesInterpolator rejects non-finite or negative control values (and zero
// when positive is set) before building the lookup.
func seriesInterpolator(name string, series domain.ParameterSeries, positive bool) (*Interpolator, error) {
	for year, v := range series {
		if !finite(v) || v < 0 || (positive && v == 0) {
			return nil, fmt.Errorf("%s: %w: value for %d out of range: %v", name, ErrInvalidConfig, year, v)
		}
	}
	ip, err := NewInterpolator(series)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ip, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// advance ages every cohort by one year. Births enter at age 0 and the
// terminal age is dropped.
func advance(population, deathsByAge *domain.CohortVector, births float64) domain.CohortVector {
	var next domain.CohortVector
	next[0] = births
	for age := 0; age < domain.MaxAge; age++ {
		next[age+1] = math.Max(0, population[age]-deathsByAge[age])
	}
	return next
}

func percentOf(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}
