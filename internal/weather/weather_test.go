package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chrisdamba/menuintel/internal/models"
)

func TestOpenMeteoProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "41.9028", r.URL.Query().Get("latitude"))
		assert.Contains(t, r.URL.Query().Get("current"), "temperature_2m")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":27.4,"relative_humidity_2m":48,"weather_code":61}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL+"/", 41.9028, 12.4964, zaptest.NewLogger(t))
	got, err := p.CurrentWeather(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Weather{TemperatureCelsius: 27.4, Condition: "rain", HumidityPercent: 48}, got)
}

func TestOpenMeteoProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL, 0, 0, zaptest.NewLogger(t))
	_, err := p.CurrentWeather(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestConditionFromCode(t *testing.T) {
	tests := map[int]string{0: "clear", 2: "cloudy", 45: "fog", 63: "rain", 81: "rain", 73: "snow", 86: "snow", 95: "storm", 30: "unknown"}
	for code, want := range tests {
		assert.Equal(t, want, conditionFromCode(code), "code %d", code)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(models.WeatherConfig{Provider: "static", TemperatureCelsius: 12, Condition: "clear"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	w, err := p.CurrentWeather(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.0, w.TemperatureCelsius)

	_, err = NewProvider(models.WeatherConfig{Provider: "almanac"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
