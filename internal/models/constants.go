package models

const (
	OrderStatusPlaced    = "placed"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"

	SuggestionTopic = "menu_optimization_suggestions"

	// DefaultWindowDays is the trailing window used for all order analytics.
	DefaultWindowDays = 30
	// DefaultPopularLimit is how many categories the popularity query returns.
	DefaultPopularLimit = 3
)
