package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfigWith(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Optimizer.WindowDays)
	assert.Equal(t, 3, cfg.Optimizer.PopularLimit)
	assert.Equal(t, 5*time.Second, cfg.Optimizer.StoreTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Optimizer.RetryBackoff)
	assert.Equal(t, 800.0, cfg.Optimizer.SeasonalAddRevenue)
	assert.Equal(t, 500.0, cfg.Optimizer.CategoryAddRevenue)
	assert.Equal(t, "console", cfg.Output.Destination)
	assert.Equal(t, SuggestionTopic, cfg.Output.Topic)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menuintel.yaml")
	body := []byte(`
log:
  level: debug
optimizer:
  store_timeout: 2s
  seasonal_add_revenue: 1200
weather:
  provider: static
  temperature_celsius: 31
seed:
  end_date: 2024-01-31T00:00:00Z
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))
	t.Setenv("MENUINTEL_OPTIMIZER_MAX_RETRIES", "4")

	cfg, err := LoadConfigWith(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Optimizer.StoreTimeout)
	assert.Equal(t, 1200.0, cfg.Optimizer.SeasonalAddRevenue)
	assert.Equal(t, 4, cfg.Optimizer.MaxRetries)
	assert.Equal(t, 31.0, cfg.Weather.TemperatureCelsius)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), cfg.Seed.EndDate)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfigWith(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"zero window", func(c *Config) { c.Optimizer.WindowDays = 0 }, false},
		{"bad weather provider", func(c *Config) { c.Weather.Provider = "sky" }, false},
		{"bad destination", func(c *Config) { c.Output.Destination = "fax" }, false},
		{"s3 without bucket", func(c *Config) { c.Output.Destination = "s3" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Weather: WeatherConfig{Provider: "static"},
				Optimizer: OptimizerConfig{
					WindowDays: 30, PopularLimit: 3, MaxConcurrency: 4, StoreTimeout: time.Second,
				},
				Output: OutputConfig{Destination: "console"},
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestImpactRankAndMargin(t *testing.T) {
	assert.Greater(t, ImpactHigh.Rank(), ImpactMedium.Rank())
	assert.Greater(t, ImpactMedium.Rank(), ImpactLow.Rank())
	assert.Equal(t, 1, Impact("").Rank())

	assert.InDelta(t, 0.7, MenuItem{Price: 10, Cost: 3}.ProfitMargin(), 1e-9)
	assert.Equal(t, 0.0, MenuItem{Price: 0, Cost: 3}.ProfitMargin())

	assert.Equal(t, 1.0, SeasonalTrend(0, 0))
	assert.Equal(t, 2.0, SeasonalTrend(0, 5))
	assert.Equal(t, 0.5, SeasonalTrend(10, 5))
}
