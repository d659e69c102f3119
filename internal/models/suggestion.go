package models

import "time"

type SuggestionType string

const (
	SuggestionRemove      SuggestionType = "REMOVE"
	SuggestionAdd         SuggestionType = "ADD"
	SuggestionModifyPrice SuggestionType = "MODIFY_PRICE"
	SuggestionPromote     SuggestionType = "PROMOTE"
	SuggestionCombine     SuggestionType = "COMBINE"
)

type Impact string

const (
	ImpactHigh   Impact = "HIGH"
	ImpactMedium Impact = "MEDIUM"
	ImpactLow    Impact = "LOW"
)

// Rank orders impacts for sorting: HIGH 3, MEDIUM 2, anything else 1.
func (i Impact) Rank() int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	default:
		return 1
	}
}

type OptimizationSuggestion struct {
	Type             SuggestionType `json:"type"`
	ItemID           string         `json:"itemId,omitempty"`
	Reason           string         `json:"reason"`
	Impact           Impact         `json:"impact"`
	SuggestedAction  string         `json:"suggestedAction"`
	PredictedRevenue float64        `json:"predictedRevenue"`
}

// SuggestionReport is the envelope published for one optimization run.
type SuggestionReport struct {
	ID            string                   `json:"id"`
	RestaurantID  string                   `json:"restaurantId"`
	GeneratedAt   time.Time                `json:"generatedAt"`
	ReferenceDate time.Time                `json:"referenceDate"`
	Suggestions   []OptimizationSuggestion `json:"suggestions"`
}
