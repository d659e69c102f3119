package demand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/menuintel/internal/models"
)

func TestPredict(t *testing.T) {
	p := NewPredictor()
	// 2024-03-01 is a Friday
	friday := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		temp float64
		want int
	}{
		{"hot friday", friday, 30, 156},
		{"mild friday", friday, 18, 130},
		{"cold friday", friday, 5, 104},
		{"cold sunday", sunday, 2, 56},
		{"hot sunday", sunday, 26, 84},
		{"wednesday at 25 is mild", wednesday, 25, 100},
		{"wednesday at 10 is mild", wednesday, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Predict(tt.date, models.Weather{TemperatureCelsius: tt.temp})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	p := NewPredictor()
	d := time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)
	w := models.Weather{TemperatureCelsius: 31, Condition: "clear"}
	assert.Equal(t, p.Predict(d, w), p.Predict(d, w))
}

func TestPredictRange(t *testing.T) {
	p := NewPredictor()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got := p.PredictRange(start, 3, models.Weather{TemperatureCelsius: 18})

	require.Len(t, got, 3)
	assert.Equal(t, []int{130, 120, 70}, []int{got[0].Score, got[1].Score, got[2].Score})
	assert.True(t, got[2].Date.Equal(start.AddDate(0, 0, 2)))

	assert.Empty(t, p.PredictRange(start, 0, models.Weather{}))
}
