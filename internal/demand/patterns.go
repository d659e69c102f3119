package demand

import "time"

// WeekdayMultipliers is the baseline demand per day of week.
var WeekdayMultipliers = map[time.Weekday]float64{
	time.Sunday:    0.7,
	time.Monday:    0.8,
	time.Tuesday:   0.9,
	time.Wednesday: 1.0,
	time.Thursday:  1.1,
	time.Friday:    1.3,
	time.Saturday:  1.2,
}

// WeatherEffects scales the baseline by temperature band.
var WeatherEffects = map[string]float64{
	"hot":    1.2,
	"cold":   0.8,
	"normal": 1.0,
}

const (
	hotAboveCelsius  = 25.0
	coldBelowCelsius = 10.0
)

// temperatureBand maps a reading to a WeatherEffects key. Both bounds are
// exclusive, so exactly 25 or 10 degrees is "normal".
func temperatureBand(celsius float64) string {
	switch {
	case celsius > hotAboveCelsius:
		return "hot"
	case celsius < coldBelowCelsius:
		return "cold"
	default:
		return "normal"
	}
}
