package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 2100, s.EndYear)
	assert.Equal(t, "console", s.Format)
	assert.Equal(t, "en", s.Lang)
	assert.Equal(t, "parity", s.Semantics)
}

func TestLoadSettings_FromEnvironment(t *testing.T) {
	t.Setenv("POPPROBE_END_YEAR", "2060")
	t.Setenv("POPPROBE_FORMAT", "json")
	t.Setenv("POPPROBE_DB_PATH", "/tmp/runs.db")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 2060, s.EndYear)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "/tmp/runs.db", s.DBPath)
}

func TestLoadSettings_InvalidYear(t *testing.T) {
	t.Setenv("POPPROBE_END_YEAR", "soon")

	_, err := LoadSettings()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
