package calculation

import (
	"context"
	"math"
	"testing"

	"github.com/popprobe/population-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRunner_PreservesOrder(t *testing.T) {
	cfgs, err := TFRVariants(fullConfig(), []float64{0.8, 1.0, 1.2})
	require.NoError(t, err)
	runner := NewBatchRunner(nil)
	runner.Concurrency = 2

	result := runner.Run(context.Background(), cfgs, 2060)
	require.Len(t, result.Outcomes, 3)
	assert.Zero(t, result.Failed)

	finals := make([]float64, 3)
	for i, o := range result.Outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, cfgs[i].Name, o.Label)
		finals[i] = o.Result.Summary.FinalPopulation
	}
	// higher fertility leaves a larger population
	assert.Less(t, finals[0], finals[1])
	assert.Less(t, finals[1], finals[2])
	assert.Equal(t, finals[1], result.FinalPopulations.P50)
	assert.Equal(t, finals[0], result.FinalPopulations.P10)
	assert.Equal(t, finals[2], result.FinalPopulations.P90)
}

func TestBatchRunner_MatchesSequential(t *testing.T) {
	cfg := fullConfig()
	want, err := NewProjectionEngine().Run(context.Background(), cfg, 2050)
	require.NoError(t, err)

	result := NewBatchRunner(nil).Run(context.Background(), []*domain.Configuration{cfg, cfg, cfg}, 2050)
	for _, o := range result.Outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, want.Records, o.Result.Records)
	}
}

func TestBatchRunner_KeepsFailures(t *testing.T) {
	result := NewBatchRunner(nil).Run(context.Background(), []*domain.Configuration{nil, fullConfig()}, 2030)
	assert.Equal(t, 1, result.Failed)
	assert.Error(t, result.Outcomes[0].Err)
	assert.Equal(t, "#1", result.Outcomes[0].Label)
	assert.NoError(t, result.Outcomes[1].Err)
}

func TestBatchRunner_UsesScenarioEndYear(t *testing.T) {
	short := fullConfig()
	short.EndYear = 2030
	long := fullConfig()

	result := NewBatchRunner(nil).Run(context.Background(), []*domain.Configuration{short, long}, 2040)
	require.NoError(t, result.Outcomes[0].Err)
	require.NoError(t, result.Outcomes[1].Err)
	assert.Equal(t, 2030, result.Outcomes[0].Result.Summary.EndYear)
	assert.Equal(t, 2040, result.Outcomes[1].Result.Summary.EndYear)
}

func TestTFRVariants(t *testing.T) {
	cfg := fullConfig()
	variants, err := TFRVariants(cfg, []float64{0.5, 2})
	require.NoError(t, err)
	require.Len(t, variants, 2)
	for year, v := range cfg.Parameters.TFR() {
		assert.InDelta(t, v*0.5, variants[0].Parameters.TFR()[year], 1e-12)
		assert.InDelta(t, v*2, variants[1].Parameters.TFR()[year], 1e-12)
	}
	assert.Contains(t, variants[0].Name, "x0.50")
	// the original is untouched
	assert.NotSame(t, cfg.Parameters.DynamicTFR, variants[0].Parameters.DynamicTFR)
}

func TestTFRVariants_RejectsBadFactors(t *testing.T) {
	for _, f := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := TFRVariants(fullConfig(), []float64{1, f})
		assert.ErrorIs(t, err, ErrInvalidConfig, "factor %v", f)
	}
	_, err := TFRVariants(nil, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestProject_RejectsNegativeFertility(t *testing.T) {
	cfg := singleBandConfig()
	cfg.Parameters.DynamicTFR = series(map[int]float64{2024: 1, 2030: -1})

	records, err := NewProjectionEngine().Project(context.Background(), cfg, 2026)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "dynamic_tfr")
	assert.Nil(t, records)
}

func TestPercentileRangesEmpty(t *testing.T) {
	assert.Equal(t, PercentileRanges{}, percentileRanges(nil))
}
