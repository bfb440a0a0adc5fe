package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityscale/healthatlas/internal/classify"
	"github.com/cityscale/healthatlas/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "İstanbul", cfg.City.Name)
	assert.Equal(t, "4", cfg.City.AdminLevel)
	assert.InDelta(t, 41.0082, cfg.City.CenterLat, 1e-9)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.Endpoint)
	assert.Equal(t, 180, cfg.Overpass.TimeoutSecs)
	assert.Equal(t, "EPSG:32635", cfg.Analysis.ProjectedCRS)
	assert.Equal(t, []float64{2, 5, 10}, cfg.Analysis.BufferRadiiKM)
	assert.Equal(t, 100.0, cfg.Analysis.BufferCellM)
	assert.Equal(t, "outputs", cfg.Output.Dir)
	assert.Equal(t, "healthatlas.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HEALTHATLAS_CITY_NAME", "Ankara")
	t.Setenv("HEALTHATLAS_ANALYSIS_PROJECTED_CRS", "EPSG:32636")
	t.Setenv("HEALTHATLAS_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Ankara", cfg.City.Name)
	assert.Equal(t, "EPSG:32636", cfg.Analysis.ProjectedCRS)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestSectorRuleTable(t *testing.T) {
	t.Run("empty falls back to built-in table", func(t *testing.T) {
		var c ClassifyConfig
		assert.Equal(t, classify.DefaultSectorRules(), c.SectorRuleTable())
	})

	t.Run("configured rules preserved in order", func(t *testing.T) {
		c := ClassifyConfig{SectorRules: []SectorRule{
			{Sector: "Private", Keywords: []string{"gmbh"}},
			{Sector: "Public", Keywords: []string{"stadt", "land"}},
		}}

		rules := c.SectorRuleTable()
		require.Len(t, rules, 2)
		assert.Equal(t, model.SectorPrivate, rules[0].Sector)
		assert.Equal(t, []string{"gmbh"}, rules[0].Keywords)
		assert.Equal(t, model.SectorPublic, rules[1].Sector)
	})
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))

	err := InitLogger(LogConfig{Level: "loud", Format: "console"})
	assert.Error(t, err)
}
