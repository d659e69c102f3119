package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/models"
)

// OpenMeteoProvider reads current conditions from the Open-Meteo forecast API.
type OpenMeteoProvider struct {
	client  *http.Client
	baseURL string
	lat     float64
	lon     float64
	logger  *zap.Logger
}

func NewOpenMeteoProvider(client *http.Client, baseURL string, lat, lon float64, logger *zap.Logger) *OpenMeteoProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenMeteoProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		lat:     lat,
		lon:     lon,
		logger:  logger.With(zap.String("component", "weather")),
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

func (p *OpenMeteoProvider) CurrentWeather(ctx context.Context) (models.Weather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(p.lon, 'f', 4, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return models.Weather{}, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return models.Weather{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.Weather{}, fmt.Errorf("fetch weather: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Weather{}, fmt.Errorf("decode weather: %w", err)
	}

	w := models.Weather{
		TemperatureCelsius: payload.Current.Temperature,
		Condition:          conditionFromCode(payload.Current.WeatherCode),
		HumidityPercent:    payload.Current.Humidity,
	}
	p.logger.Debug("weather fetched",
		zap.Float64("temperature_celsius", w.TemperatureCelsius),
		zap.String("condition", w.Condition),
	)
	return w, nil
}

// conditionFromCode collapses WMO weather codes into coarse conditions.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 67, code >= 80 && code <= 82:
		return "rain"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "storm"
	default:
		return "unknown"
	}
}
