package seasonality

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type Status string

const (
	InSeason      Status = "in_season"
	Transitioning Status = "transitioning"
	OutOfSeason   Status = "out_of_season"
)

type SeasonalAnalysis struct {
	Key               string   `json:"key"`
	Ingredient        string   `json:"ingredient"`
	Status            Status   `json:"status"`
	Quality           Quality  `json:"quality"`
	CostImpactPercent int      `json:"costImpactPercent"`
	Recommendation    string   `json:"recommendation"`
	Alternatives      []string `json:"alternatives"`
}

var recommendationTemplates = map[Status]func(name string, impact int) string{
	InSeason: func(name string, _ int) string {
		return fmt.Sprintf("%s is at peak season: feature it at standard cost.", name)
	},
	Transitioning: func(name string, impact int) string {
		return fmt.Sprintf("%s is moving in or out of season: expect about %d%% higher cost and use it sparingly.", name, impact)
	},
	OutOfSeason: func(name string, impact int) string {
		return fmt.Sprintf("%s is out of season: costs run about %d%% higher and quality drops, consider a substitute.", name, impact)
	},
}

type Classifier struct {
	catalog *Catalog
}

func NewClassifier(catalog *Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// IsInSeason reports whether month falls inside the ingredient's peak window.
func IsInSeason(ing Ingredient, month time.Month) bool {
	if ing.Availability == YearRound {
		return true
	}
	m := int(month)
	start, end := ing.PeakSeason.Start, ing.PeakSeason.End
	if start <= end {
		return m >= start && m <= end
	}
	return m >= start || m <= end
}

// isTransitioning is true for the month just before or just after the peak
// window, wrapping December into January.
func isTransitioning(ing Ingredient, month time.Month) bool {
	m := int(month)
	return m == prevMonth(ing.PeakSeason.Start) || m == nextMonth(ing.PeakSeason.End)
}

func prevMonth(m int) int { return (m+10)%12 + 1 }

func nextMonth(m int) int { return m%12 + 1 }

func costImpact(mult float64) int {
	return int(math.Round((mult - 1) * 100))
}

// Classify grades one catalog ingredient for the given month.
func (c *Classifier) Classify(key string, month time.Month) (SeasonalAnalysis, error) {
	ing, ok := c.catalog.Lookup(key)
	if !ok {
		return SeasonalAnalysis{}, fmt.Errorf("%w: %q", ErrIngredientNotFound, key)
	}
	return c.classify(ing, month), nil
}

func (c *Classifier) classify(ing Ingredient, month time.Month) SeasonalAnalysis {
	a := SeasonalAnalysis{
		Key:          ing.Key,
		Ingredient:   ing.Name,
		Alternatives: c.catalog.Alternatives(ing.Key),
	}
	switch {
	case IsInSeason(ing, month):
		a.Status = InSeason
		a.Quality = QualityExcellent
	case isTransitioning(ing, month):
		a.Status = Transitioning
		a.Quality = ing.OffSeasonQuality
		a.CostImpactPercent = costImpact(ing.CostMultiplier)
	default:
		a.Status = OutOfSeason
		a.Quality = ing.OffSeasonQuality
		a.CostImpactPercent = costImpact(ing.CostMultiplier)
	}
	a.Recommendation = recommendationTemplates[a.Status](a.Ingredient, a.CostImpactPercent)
	return a
}
