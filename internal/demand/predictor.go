package demand

import (
	"math"
	"time"

	"github.com/chrisdamba/menuintel/internal/models"
)

type DailyDemand struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// Predictor turns a date and a weather reading into a relative demand score,
// where 100 is an ordinary Wednesday in mild weather.
type Predictor struct {
	weekday map[time.Weekday]float64
	weather map[string]float64
}

func NewPredictor() *Predictor {
	return &Predictor{weekday: WeekdayMultipliers, weather: WeatherEffects}
}

func (p *Predictor) Predict(date time.Time, w models.Weather) int {
	base, ok := p.weekday[date.Weekday()]
	if !ok {
		base = 1.0
	}
	return int(math.Round(base * p.WeatherMultiplier(w) * 100))
}

func (p *Predictor) WeatherMultiplier(w models.Weather) float64 {
	return p.weather[temperatureBand(w.TemperatureCelsius)]
}

// PredictRange scores days consecutive dates starting at start, holding the
// weather constant.
func (p *Predictor) PredictRange(start time.Time, days int, w models.Weather) []DailyDemand {
	if days <= 0 {
		return []DailyDemand{}
	}
	out := make([]DailyDemand, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		out = append(out, DailyDemand{Date: d, Score: p.Predict(d, w)})
	}
	return out
}
