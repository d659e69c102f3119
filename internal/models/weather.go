package models

type Weather struct {
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	Condition          string  `json:"condition"`
	HumidityPercent    float64 `json:"humidityPercent"`
}
