package calculation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/popprobe/population-simulator/internal/domain"
)

// DefaultBatchConcurrency limits how many projections a batch runs at once.
const DefaultBatchConcurrency = 4

// BatchRunner projects several scenarios concurrently with one shared engine.
type BatchRunner struct {
	Engine      *ProjectionEngine
	Concurrency int
}

// BatchOutcome is the result of one scenario in a batch.
type BatchOutcome struct {
	Label  string                   `json:"label"`
	Result *domain.ProjectionResult `json:"result,omitempty"`
	Err    error                    `json:"-"`
}

// PercentileRanges summarizes final populations across a batch, in thousands.
type PercentileRanges struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// BatchResult holds outcomes in input order.
type BatchResult struct {
	Outcomes         []BatchOutcome   `json:"outcomes"`
	FinalPopulations PercentileRanges `json:"final_populations"`
	Failed           int              `json:"failed"`
}

// NewBatchRunner creates a runner around engine.
func NewBatchRunner(engine *ProjectionEngine) *BatchRunner {
	if engine == nil {
		engine = NewProjectionEngine()
	}
	return &BatchRunner{Engine: engine, Concurrency: DefaultBatchConcurrency}
}

// Run projects every configuration to its own end_year, or to endYear when the
// scenario sets none. A failing scenario does not stop the others; its error is
// kept on the outcome.
func (br *BatchRunner) Run(ctx context.Context, cfgs []*domain.Configuration, endYear int) *BatchResult {
	limit := br.Concurrency
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	outcomes := make([]BatchOutcome, len(cfgs))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, limit)

	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg *domain.Configuration) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcome := BatchOutcome{Label: fmt.Sprintf("#%d", idx+1)}
			if cfg != nil && cfg.Name != "" {
				outcome.Label = cfg.Name
			}
			end := endYear
			if cfg != nil && cfg.EndYear > 0 {
				end = cfg.EndYear
			}
			outcome.Result, outcome.Err = br.Engine.Run(ctx, cfg, end)
			outcomes[idx] = outcome
		}(i, cfg)
	}
	wg.Wait()

	result := &BatchResult{Outcomes: outcomes}
	finals := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			result.Failed++
			br.Engine.logger().Warnf("%s: %v", o.Label, o.Err)
			continue
		}
		finals = append(finals, o.Result.Summary.FinalPopulation)
	}
	result.FinalPopulations = percentileRanges(finals)
	return result
}

func percentileRanges(values []float64) PercentileRanges {
	n := len(values)
	if n == 0 {
		return PercentileRanges{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return PercentileRanges{
		P10: sorted[n/10],
		P25: sorted[n/4],
		P50: sorted[n/2],
		P75: sorted[3*n/4],
		P90: sorted[9*n/10],
	}
}

// TFRVariants returns copies of cfg with every fertility control point scaled by
// each factor. Names get a " xF" suffix. Factors must be finite and non-negative.
func TFRVariants(cfg *domain.Configuration, factors []float64) ([]*domain.Configuration, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}
	out := make([]*domain.Configuration, 0, len(factors))
	for _, f := range factors {
		if !finite(f) || f < 0 {
			return nil, fmt.Errorf("%w: fertility scale factor must be non-negative, got %v", ErrInvalidConfig, f)
		}
		v := cfg.Clone()
		v.Name = fmt.Sprintf("%s x%.2f", cfg.Name, f)
		series := cfg.Parameters.TFR()
		scaled := make(domain.ParameterSeries, len(series))
		for year, tfr := range series {
			scaled[year] = tfr * f
		}
		desc := ""
		if cfg.Parameters.DynamicTFR != nil {
			desc = cfg.Parameters.DynamicTFR.Description
		}
		v.Parameters.DynamicTFR = &domain.DynamicSeries{Description: desc, Values: scaled}
		out = append(out, v)
	}
	return out, nil
}
