package optimizer

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/seasonality"
)

const (
	lowOrderThreshold     = 5
	lowRevenueThreshold   = 100.0
	lowMarginThreshold    = 0.5
	priceIncreaseFactor   = 1.15
	hotWeatherCelsius     = 25.0
	promotionUplift       = 1.2
	promotedKeyword       = "soup"
	seasonalCostThreshold = 30
	maxSubstitutions      = 2
	substitutionFactor    = 0.9
)

type itemContext struct {
	item       *models.MenuItem
	analytics  *models.MenuItemAnalytics
	weather    models.Weather
	seasonal   seasonality.MenuSeasonalReport
	windowDays int
}

type menuContext struct {
	seasonal   seasonality.SeasonalDishes
	popular    []string
	windowDays int
	cfg        models.OptimizerConfig
}

// itemRules run in this order for every item. Every rule is independent, so
// one item can collect several suggestions.
var itemRules = []func(itemContext) []models.OptimizationSuggestion{
	lowPerformance,
	lowMargin,
	weatherPromotion,
	seasonalPassThrough,
	seasonalSubstitution,
}

var menuRules = []func(menuContext) []models.OptimizationSuggestion{
	seasonalSpecial,
	popularCategory,
}

func lowPerformance(ic itemContext) []models.OptimizationSuggestion {
	a := ic.analytics
	if a.TotalOrders >= lowOrderThreshold || a.TotalRevenue >= lowRevenueThreshold {
		return nil
	}
	return []models.OptimizationSuggestion{{
		Type:   models.SuggestionRemove,
		ItemID: ic.item.ID,
		Reason: fmt.Sprintf("Only %d orders and %.2f revenue in the last %d days",
			a.TotalOrders, a.TotalRevenue, ic.windowDays),
		Impact:           models.ImpactMedium,
		SuggestedAction:  fmt.Sprintf("Remove %s from the menu or rework the recipe", ic.item.Name),
		PredictedRevenue: 0,
	}}
}

func lowMargin(ic itemContext) []models.OptimizationSuggestion {
	a := ic.analytics
	if a.ProfitMargin >= lowMarginThreshold {
		return nil
	}
	return []models.OptimizationSuggestion{{
		Type:             models.SuggestionModifyPrice,
		ItemID:           ic.item.ID,
		Reason:           fmt.Sprintf("Profit margin of %.0f%% is below %.0f%%", a.ProfitMargin*100, lowMarginThreshold*100),
		Impact:           models.ImpactHigh,
		SuggestedAction:  fmt.Sprintf("Raise the price of %s by 15%% to %.2f", ic.item.Name, ic.item.Price*priceIncreaseFactor),
		PredictedRevenue: a.TotalRevenue * priceIncreaseFactor,
	}}
}

func weatherPromotion(ic itemContext) []models.OptimizationSuggestion {
	if ic.weather.TemperatureCelsius <= hotWeatherCelsius ||
		!strings.Contains(strings.ToLower(ic.item.Name), promotedKeyword) {
		return nil
	}
	return []models.OptimizationSuggestion{{
		Type:             models.SuggestionPromote,
		ItemID:           ic.item.ID,
		Reason:           fmt.Sprintf("Current temperature of %.1f°C shifts demand", ic.weather.TemperatureCelsius),
		Impact:           models.ImpactLow,
		SuggestedAction:  fmt.Sprintf("Feature %s as today's special", ic.item.Name),
		PredictedRevenue: ic.analytics.TotalRevenue * promotionUplift,
	}}
}

func seasonalPassThrough(ic itemContext) []models.OptimizationSuggestion {
	pct := ic.seasonal.AggregateCostImpactPercent
	if pct <= seasonalCostThreshold {
		return nil
	}
	return []models.OptimizationSuggestion{{
		Type:             models.SuggestionModifyPrice,
		ItemID:           ic.item.ID,
		Reason:           fmt.Sprintf("Out-of-season ingredients raise costs by %d%%", pct),
		Impact:           models.ImpactHigh,
		SuggestedAction:  fmt.Sprintf("Increase the price of %s by %d%% while ingredients are out of season", ic.item.Name, pct),
		PredictedRevenue: ic.analytics.TotalRevenue * (1 + float64(pct)/100),
	}}
}

func seasonalSubstitution(ic itemContext) []models.OptimizationSuggestion {
	var ingredients, alternatives []string
	considered := 0
	for _, an := range ic.seasonal.Analyses {
		if considered == maxSubstitutions {
			break
		}
		if an.Status != seasonality.OutOfSeason {
			continue
		}
		considered++
		if len(an.Alternatives) == 0 {
			continue
		}
		ingredients = append(ingredients, an.Ingredient)
		alternatives = append(alternatives, an.Alternatives[0])
	}
	if len(alternatives) == 0 {
		return nil
	}
	return []models.OptimizationSuggestion{{
		Type:             models.SuggestionModifyPrice,
		ItemID:           ic.item.ID,
		Reason:           "Out-of-season ingredients: " + strings.Join(ingredients, ", "),
		Impact:           models.ImpactMedium,
		SuggestedAction:  fmt.Sprintf("Substitute in %s: %s", ic.item.Name, strings.Join(alternatives, ", ")),
		PredictedRevenue: ic.analytics.TotalRevenue * substitutionFactor,
	}}
}

func seasonalSpecial(mc menuContext) []models.OptimizationSuggestion {
	if len(mc.seasonal.InSeason) == 0 {
		return nil
	}
	list := strings.Join(mc.seasonal.InSeason, ", ")
	return []models.OptimizationSuggestion{{
		Type:             models.SuggestionAdd,
		Reason:           "In season now: " + list,
		Impact:           models.ImpactHigh,
		SuggestedAction:  "Add a seasonal special built on " + list,
		PredictedRevenue: mc.cfg.SeasonalAddRevenue,
	}}
}

func popularCategory(mc menuContext) []models.OptimizationSuggestion {
	if len(mc.popular) == 0 {
		return nil
	}
	top := mc.popular[0]
	return []models.OptimizationSuggestion{{
		Type:             models.SuggestionAdd,
		Reason:           fmt.Sprintf("%s is the most ordered category over the last %d days", top, mc.windowDays),
		Impact:           models.ImpactMedium,
		SuggestedAction:  fmt.Sprintf("Add a new dish to the %s category", top),
		PredictedRevenue: mc.cfg.CategoryAddRevenue,
	}}
}
