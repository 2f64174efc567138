package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/popprobe/population-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(name string, final float64) (*domain.Configuration, *domain.ProjectionResult) {
	cfg := &domain.Configuration{
		Name:                 name,
		Year:                 2024,
		PopulationUnit:       "万人",
		PopulationByAgeGroup: map[string]float64{"20-24岁": 100},
		Parameters: domain.Parameters{
			DynamicTFR: &domain.DynamicSeries{Values: domain.ParameterSeries{2024: 1, 2050: 1.4}},
		},
	}
	result := &domain.ProjectionResult{
		Name:      name,
		Unit:      "thousand",
		Semantics: "parity-v1",
		Summary:   domain.ProjectionSummary{StartYear: 2024, EndYear: 2026, InitialPopulation: 1000, FinalPopulation: final},
		Records:   []domain.ProjectionRecord{{Year: 2024, TotalPopulation: 1000}, {Year: 2026, TotalPopulation: final}},
	}
	return cfg, result
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

func TestSaveAndLoadRun(t *testing.T) {
	orig := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { nowFunc = orig }()

	store := openTempStore(t)
	ctx := context.Background()
	cfg, result := sampleRun("baseline", 1014.9)

	id, err := store.SaveRun(ctx, "", cfg, result)
	require.NoError(t, err)
	assert.Positive(t, id)

	run, err := store.LoadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "baseline", run.Name)
	assert.Equal(t, 2024, run.StartYear)
	assert.Equal(t, 2026, run.EndYear)
	assert.Equal(t, 1014.9, run.FinalPopulation)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), run.CreatedAt)
	assert.Equal(t, cfg.PopulationByAgeGroup, run.Config.PopulationByAgeGroup)
	assert.Equal(t, domain.ParameterSeries{2024: 1, 2050: 1.4}, run.Config.Parameters.TFR())
	assert.Equal(t, result.Records, run.Result.Records)
	assert.Equal(t, result.Summary, run.Result.Summary)
}

func TestListRuns_NewestFirst(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		cfg, result := sampleRun(name, float64(1000+i))
		_, err := store.SaveRun(ctx, name, cfg, result)
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "third", runs[0].Name)
	assert.Equal(t, "first", runs[2].Name)
	assert.Equal(t, 1000.0, runs[2].FinalPopulation)
}

func TestLoadRun_NotFound(t *testing.T) {
	store := openTempStore(t)
	_, err := store.LoadRun(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveRun_Validation(t *testing.T) {
	store := openTempStore(t)
	_, err := store.SaveRun(context.Background(), "x", nil, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg, result := sampleRun("x", 1)
	_, err = store.SaveRun(ctx, "x", cfg, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNilStore(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
	_, err := store.ListRuns(context.Background())
	assert.Error(t, err)
}
