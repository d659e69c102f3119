package weather

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/models"
)

// Provider returns the current weather around the restaurants.
type Provider interface {
	CurrentWeather(ctx context.Context) (models.Weather, error)
}

type StaticProvider struct {
	Weather models.Weather
}

func (p StaticProvider) CurrentWeather(ctx context.Context) (models.Weather, error) {
	if err := ctx.Err(); err != nil {
		return models.Weather{}, err
	}
	return p.Weather, nil
}

// NewProvider builds the provider named in cfg.
func NewProvider(cfg models.WeatherConfig, logger *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case "", "static":
		return StaticProvider{Weather: models.Weather{
			TemperatureCelsius: cfg.TemperatureCelsius,
			Condition:          cfg.Condition,
			HumidityPercent:    cfg.HumidityPercent,
		}}, nil
	case "open-meteo":
		client := &http.Client{Timeout: cfg.Timeout}
		return NewOpenMeteoProvider(client, cfg.BaseURL, cfg.Latitude, cfg.Longitude, logger), nil
	default:
		return nil, fmt.Errorf("unknown weather provider %q", cfg.Provider)
	}
}
