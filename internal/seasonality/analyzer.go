package seasonality

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	maxInSeasonSuggestions = 5
	maxAvoidSuggestions    = 3
	excellentShare         = 0.7
	highCostImpactPercent  = 50
)

type DishInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MenuSeasonalReport struct {
	Analyses                   []SeasonalAnalysis `json:"analyses"`
	Recommendations            []string           `json:"recommendations"`
	AggregateCostImpactPercent int                `json:"aggregateCostImpactPercent"`
}

// Count returns how many analyses carry the given status.
func (r MenuSeasonalReport) Count(status Status) int {
	n := 0
	for _, a := range r.Analyses {
		if a.Status == status {
			n++
		}
	}
	return n
}

type Analyzer struct {
	catalog    *Catalog
	classifier *Classifier
	extractor  *Extractor
}

func NewAnalyzer(catalog *Catalog) *Analyzer {
	return &Analyzer{
		catalog:    catalog,
		classifier: NewClassifier(catalog),
		extractor:  NewExtractor(catalog),
	}
}

func (a *Analyzer) Catalog() *Catalog { return a.catalog }

func (a *Analyzer) Classifier() *Classifier { return a.classifier }

// AnalyzeMenu classifies every ingredient detected in every dish. A shared
// ingredient is reported once per dish that mentions it.
func (a *Analyzer) AnalyzeMenu(items []DishInput, month time.Month) MenuSeasonalReport {
	report := MenuSeasonalReport{
		Analyses:        []SeasonalAnalysis{},
		Recommendations: []string{},
	}
	for _, item := range items {
		for _, key := range a.extractor.Extract(item.Name, item.Description) {
			analysis, err := a.classifier.Classify(key, month)
			if errors.Is(err, ErrIngredientNotFound) {
				continue
			}
			report.Analyses = append(report.Analyses, analysis)
		}
	}
	if len(report.Analyses) == 0 {
		return report
	}

	total, excellent := 0, 0
	for _, an := range report.Analyses {
		total += an.CostImpactPercent
		if an.Quality == QualityExcellent {
			excellent++
		}
	}
	n := len(report.Analyses)
	report.AggregateCostImpactPercent = int(math.Round(float64(total) / float64(n)))

	if report.Count(OutOfSeason) > report.Count(InSeason) {
		report.Recommendations = append(report.Recommendations,
			"Most ingredients on this menu are out of season: consider rotating to a seasonal menu.")
	}
	if report.AggregateCostImpactPercent > highCostImpactPercent {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Out-of-season sourcing adds about %d%% to ingredient costs: review prices or substitutions.",
				report.AggregateCostImpactPercent))
	}
	if float64(excellent) > excellentShare*float64(n) {
		report.Recommendations = append(report.Recommendations,
			"Great seasonal alignment: most ingredients are at peak quality.")
	}
	return report
}

type SeasonalDishes struct {
	InSeason []string `json:"inSeason"`
	Avoid    []string `json:"avoid"`
}

// SuggestSeasonalDishes lists, in catalog order, up to five ingredients that
// are in season and up to three that are not. Year-round ingredients are
// always in season and never avoided.
func (a *Analyzer) SuggestSeasonalDishes(month time.Month) SeasonalDishes {
	out := SeasonalDishes{InSeason: []string{}, Avoid: []string{}}
	for _, ing := range a.catalog.Ingredients() {
		if IsInSeason(ing, month) {
			if len(out.InSeason) < maxInSeasonSuggestions {
				out.InSeason = append(out.InSeason, ing.Name)
			}
			continue
		}
		if ing.Availability != YearRound && len(out.Avoid) < maxAvoidSuggestions {
			out.Avoid = append(out.Avoid, ing.Name)
		}
	}
	return out
}

// Advisories renders the in-season and avoid lists as two sentences.
func (s SeasonalDishes) Advisories() []string {
	inSeason := "No seasonal ingredients are at their peak this month."
	if len(s.InSeason) > 0 {
		inSeason = "Build dishes around what is in season now: " + strings.Join(s.InSeason, ", ") + "."
	}
	avoid := "No seasonal ingredients need avoiding this month."
	if len(s.Avoid) > 0 {
		avoid = "Avoid or substitute out-of-season ingredients: " + strings.Join(s.Avoid, ", ") + "."
	}
	return []string{inSeason, avoid}
}
